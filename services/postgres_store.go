package services

import (
	"context"
	"time"

	"checkin/errors"
	"checkin/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type checkinRow struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	Date         string `gorm:"index;not null"`
	ClientName   string
	Phone        string
	VehicleModel string
	Plate        string
	Service      string
	PhotoURLs    pq.StringArray `gorm:"column:photo_urls;type:text[]"`
	Signature    string
}

func (checkinRow) TableName() string {
	return CollectionName
}

func (r checkinRow) toRecord() models.CheckinRecord {
	rec := models.CheckinRecord{
		ID:           r.ID,
		Date:         r.Date,
		ClientName:   r.ClientName,
		Phone:        r.Phone,
		VehicleModel: r.VehicleModel,
		Plate:        r.Plate,
		Service:      r.Service,
		PhotoURLs:    []string(r.PhotoURLs),
		Signature:    r.Signature,
	}
	rec.Normalize()
	return rec
}

// PostgresStore stores check-ins in a Postgres table through gorm
type PostgresStore struct {
	db      *gorm.DB
	timeout time.Duration
	now     func() time.Time
}

func NewPostgresStore(db *gorm.DB, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout, now: time.Now}
}

// Migrate creates or updates the checkins table
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&checkinRow{})
}

func (s *PostgresStore) Create(ctx context.Context, record models.CheckinRecord) (*models.CheckinRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stampDate(&record, s.now)
	row := checkinRow{
		ID:           uuid.NewString(),
		Date:         record.Date,
		ClientName:   record.ClientName,
		Phone:        record.Phone,
		VehicleModel: record.VehicleModel,
		Plate:        record.Plate,
		Service:      record.Service,
		PhotoURLs:    pq.StringArray(append([]string{}, record.PhotoURLs...)),
		Signature:    record.Signature,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, errors.StoreWriteFailed(err)
	}
	out := row.toRecord()
	return &out, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.CheckinRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var rows []checkinRow
	if err := s.db.WithContext(ctx).Order("date desc").Find(&rows).Error; err != nil {
		return nil, errors.StoreReadFailed(err)
	}
	out := make([]models.CheckinRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toRecord())
	}
	return out, nil
}

// Delete removes the row with id; zero affected rows is success
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		// no row can match; the uuid column would reject the literal
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Delete(&checkinRow{}, "id = ?", id).Error; err != nil {
		return errors.StoreDeleteFailed(err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
