package services

import (
	"context"
	"io"

	"checkin/errors"
	"checkin/models"
	"checkin/services/logger"
)

// Photo is one image attached to a create request
type Photo struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// CheckinService binds the uploader and the record store
type CheckinService struct {
	store      RecordStore
	uploader   MediaUploader
	events     EventPublisher
	metrics    *Metrics
	logger     logger.Logger
	compensate bool
}

type CheckinServiceOptions struct {
	Store    RecordStore
	Uploader MediaUploader
	Events   EventPublisher
	Metrics  *Metrics
	Logger   logger.Logger
	// CompensateOrphans removes already uploaded photos when the save fails,
	// if the uploader implements AssetRemover.
	CompensateOrphans bool
}

func NewCheckinService(opts CheckinServiceOptions) *CheckinService {
	s := &CheckinService{
		store:      opts.Store,
		uploader:   opts.Uploader,
		events:     opts.Events,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		compensate: opts.CompensateOrphans,
	}
	if s.events == nil {
		s.events = nopPublisher{}
	}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	return s
}

// log prefers the request-scoped logger carried by ctx
func (s *CheckinService) log(ctx context.Context) logger.Logger {
	return logger.FromContext(ctx, s.logger)
}

// Upload forwards one image to the media host
func (s *CheckinService) Upload(ctx context.Context, r io.Reader, filename string) (*UploadResult, error) {
	res, err := s.uploader.Upload(ctx, r, filename)
	s.metrics.ObserveUpload(err)
	if err != nil {
		s.log(ctx).Error("upload %s: %v", filename, err)
		return nil, err
	}
	s.log(ctx).Info("uploaded %s -> %s", filename, res.URL)
	return res, nil
}

// Create uploads photos in order, appends their URLs to the record and saves it.
// An upload failure aborts before anything is saved.
func (s *CheckinService) Create(ctx context.Context, record models.CheckinRecord, photos []Photo) (*models.CheckinRecord, error) {
	uploaded := make([]UploadResult, 0, len(photos))
	for _, p := range photos {
		res, err := s.uploadPhoto(ctx, p)
		if err != nil {
			s.handleOrphans(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, *res)
		record.PhotoURLs = append(record.PhotoURLs, res.URL)
	}

	created, err := s.store.Create(ctx, record)
	s.metrics.ObserveStore("create", err)
	if err != nil {
		s.log(ctx).Error("create check-in: %v", err)
		s.handleOrphans(ctx, uploaded)
		return nil, err
	}

	s.log(ctx).Info("created check-in %s (plate %q, %d photos)", created.ID, created.Plate, len(created.PhotoURLs))
	s.events.Publish(createdEvent(created))
	return created, nil
}

func (s *CheckinService) uploadPhoto(ctx context.Context, p Photo) (*UploadResult, error) {
	rc, err := p.Open()
	if err != nil {
		return nil, errors.UploadFailed(err)
	}
	defer rc.Close()
	return s.Upload(ctx, rc, p.Filename)
}

// handleOrphans deals with assets stored before a later step failed. Without
// compensation they are only logged and counted.
func (s *CheckinService) handleOrphans(ctx context.Context, uploaded []UploadResult) {
	if len(uploaded) == 0 {
		return
	}
	remover, ok := s.uploader.(AssetRemover)
	for _, asset := range uploaded {
		if !s.compensate || !ok || asset.PublicID == "" {
			s.log(ctx).Warn("orphaned asset %s left at media host", asset.URL)
			s.metrics.ObserveOrphan("kept")
			continue
		}
		if err := remover.Remove(context.WithoutCancel(ctx), asset.PublicID); err != nil {
			s.log(ctx).Error("remove orphaned asset %s: %v", asset.PublicID, err)
			s.metrics.ObserveOrphan("remove_failed")
			continue
		}
		s.log(ctx).Info("removed orphaned asset %s", asset.PublicID)
		s.metrics.ObserveOrphan("removed")
	}
}

// List returns all check-ins, newest first
func (s *CheckinService) List(ctx context.Context) ([]models.CheckinRecord, error) {
	records, err := s.store.List(ctx)
	s.metrics.ObserveStore("list", err)
	if err != nil {
		s.log(ctx).Error("list check-ins: %v", err)
		return nil, err
	}
	return records, nil
}

// Delete removes one check-in; deleting an unknown id succeeds
func (s *CheckinService) Delete(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, id)
	s.metrics.ObserveStore("delete", err)
	if err != nil {
		s.log(ctx).Error("delete check-in %s: %v", id, err)
		return err
	}
	s.log(ctx).Info("deleted check-in %s", id)
	s.events.Publish(deletedEvent(id))
	return nil
}

// Ping checks the record store
func (s *CheckinService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
