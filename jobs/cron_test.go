package jobs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"checkin/services/logger"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyStore struct {
	errs []error
	i    int
}

func (s *flakyStore) Ping(context.Context) error {
	err := s.errs[s.i%len(s.errs)]
	s.i++
	return err
}

func TestStoreHealthJobLogsTransitions(t *testing.T) {
	down := errors.New("no reachable servers")
	store := &flakyStore{errs: []error{nil, nil, down, down, nil}}
	var buf bytes.Buffer
	job := NewStoreHealthJob(store, time.Second, logger.NewWithWriter(&buf, logger.InfoLevel))

	for range store.errs {
		job.Run()
	}

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "health check ok"))
	assert.Equal(t, 1, strings.Count(out, "health check failed"))
	assert.Equal(t, 1, strings.Count(out, "reachable again"))
}

func TestStoreHealthJobFirstRunFailure(t *testing.T) {
	store := &flakyStore{errs: []error{errors.New("auth failed")}}
	var buf bytes.Buffer
	job := NewStoreHealthJob(store, time.Second, logger.NewWithWriter(&buf, logger.InfoLevel))

	job.Run()
	job.Run()

	assert.Equal(t, 1, strings.Count(buf.String(), "health check failed"))
	assert.NotContains(t, buf.String(), "health check ok")
}

func TestInitCronJobs(t *testing.T) {
	c := cron.New()
	job := NewStoreHealthJob(&flakyStore{errs: []error{nil}}, time.Second, logger.Nop{})

	require.NoError(t, InitCronJobs(c, "@every 1h", job, logger.Nop{}))
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()

	assert.Error(t, InitCronJobs(cron.New(), "not a schedule", job, logger.Nop{}))
}
