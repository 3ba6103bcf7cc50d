package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tintaku/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ RecordStore = (*LocalStore)(nil)

// LocalStore keeps the cerpen collection in the embedded local database.
type LocalStore struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewLocalStore wraps an opened gorm connection. timeout bounds every
// operation so a stalled database resolves to ErrStorageUnavailable instead
// of hanging the caller.
func NewLocalStore(db *gorm.DB, timeout time.Duration) *LocalStore {
	return &LocalStore{db: db, timeout: timeout}
}

func (s *LocalStore) ListAll(ctx context.Context) ([]models.Cerpen, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("local", "list")

	var items []models.Cerpen
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, s.unavailable("list", err)
	}
	return items, nil
}

func (s *LocalStore) GetByID(ctx context.Context, id string) (*models.Cerpen, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("local", "get")

	var item models.Cerpen
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.unavailable("get", err)
	}
	return &item, nil
}

func (s *LocalStore) Put(ctx context.Context, c *models.Cerpen) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("local", "put")

	// Full replace keyed by id, no partial merge.
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(c).Error
	if err != nil {
		return s.unavailable("put", err)
	}
	return nil
}

func (s *LocalStore) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("local", "delete")

	if err := s.db.WithContext(ctx).Delete(&models.Cerpen{}, "id = ?", id).Error; err != nil {
		return s.unavailable("delete", err)
	}
	return nil
}

func (s *LocalStore) unavailable(op string, err error) error {
	countFailure("local", op)
	logrus.WithError(err).WithField("op", op).Error("local store failure")
	return fmt.Errorf("%s: %w", op, ErrStorageUnavailable)
}
