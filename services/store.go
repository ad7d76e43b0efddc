package services

import (
	"context"
	"sort"
	"time"

	"checkin/models"
)

// CollectionName is the collection/table holding check-ins in every backend
const CollectionName = "checkins"

// RecordStore persists check-in records. Implementations return AppErrors
// carrying STORE_WRITE_FAILED, STORE_READ_FAILED or STORE_DELETE_FAILED.
type RecordStore interface {
	// Create inserts record and returns it with the store assigned id.
	Create(ctx context.Context, record models.CheckinRecord) (*models.CheckinRecord, error)
	// List returns every record ordered by date, newest first.
	List(ctx context.Context) ([]models.CheckinRecord, error)
	// Delete removes the record with id. A missing id is not an error.
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// stampDate assigns the write time to records created without a date
func stampDate(record *models.CheckinRecord, now func() time.Time) {
	if record.Date == "" {
		record.Date = now().UTC().Format(time.RFC3339)
	}
}

func sortByDateDesc(records []models.CheckinRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
}
