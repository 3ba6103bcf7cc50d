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

// SideStore persists the two per-story side tables: comment lists and like
// counters. Side tables always live in the local database, whichever record
// backend is active.
type SideStore struct {
	db      *gorm.DB
	locks   *keyedLocks
	timeout time.Duration
}

func NewSideStore(db *gorm.DB, timeout time.Duration) *SideStore {
	return &SideStore{db: db, locks: newKeyedLocks(), timeout: timeout}
}

// GetComments returns the stored comments newest first, empty if none.
func (s *SideStore) GetComments(ctx context.Context, cerpenID string) ([]models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("side", "get_comments")

	comments := []models.Comment{}
	err := s.db.WithContext(ctx).
		Where("cerpen_id = ?", cerpenID).
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, s.unavailable("get_comments", err)
	}
	return comments, nil
}

// AppendComment stores a new comment as the head of the story's list.
func (s *SideStore) AppendComment(ctx context.Context, cerpenID string, entry *models.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("side", "append_comment")

	mu := s.locks.lock(cerpenID)
	defer mu.Unlock()

	entry.CerpenID = cerpenID
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return s.unavailable("append_comment", err)
	}
	return nil
}

// GetLikes returns the like counter for a story, zero-valued if none exists
// yet. The device-scoped Liked flag is left for the caller to fill in.
func (s *SideStore) GetLikes(ctx context.Context, cerpenID string) (models.LikeCounter, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("side", "get_likes")

	return s.loadCounter(ctx, cerpenID)
}

// ToggleLike flips the device's like state for a story. liked is the flag
// currently held by the caller's session: when set the count is decremented
// (floored at zero), otherwise incremented. The read-modify-write runs under
// the story's key lock so concurrent toggles cannot lose an update.
func (s *SideStore) ToggleLike(ctx context.Context, cerpenID string, liked bool) (models.LikeCounter, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("side", "toggle_like")

	mu := s.locks.lock(cerpenID)
	defer mu.Unlock()

	counter, err := s.loadCounter(ctx, cerpenID)
	if err != nil {
		return models.LikeCounter{}, err
	}

	if liked {
		counter.Count--
		if counter.Count < 0 {
			counter.Count = 0
		}
		counter.Liked = false
	} else {
		counter.Count++
		counter.Liked = true
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&models.LikeCounter{CerpenID: cerpenID, Count: counter.Count}).Error
	if err != nil {
		return models.LikeCounter{}, s.unavailable("toggle_like", err)
	}
	return counter, nil
}

func (s *SideStore) loadCounter(ctx context.Context, cerpenID string) (models.LikeCounter, error) {
	var counter models.LikeCounter
	err := s.db.WithContext(ctx).First(&counter, "cerpen_id = ?", cerpenID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.LikeCounter{CerpenID: cerpenID}, nil
	}
	if err != nil {
		return models.LikeCounter{}, s.unavailable("get_likes", err)
	}
	return counter, nil
}

func (s *SideStore) unavailable(op string, err error) error {
	countFailure("side", op)
	logrus.WithError(err).WithField("op", op).Error("side store failure")
	return fmt.Errorf("%s: %w", op, ErrStorageUnavailable)
}
