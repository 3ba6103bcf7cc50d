package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tintaku/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CoverUploader puts an inline cover image into blob storage and returns the
// retrievable URL.
type CoverUploader interface {
	UploadDataURI(ctx context.Context, dataURI string) (string, error)
}

var _ RecordStore = (*RemoteStore)(nil)

// RemoteStore mirrors the record store contract onto a remote document
// collection: one hash keyed by the collection name, one JSON document per
// field. Covers submitted as data URIs are uploaded to blob storage before
// the document is written.
type RemoteStore struct {
	rdb        *redis.Client
	uploader   CoverUploader
	collection string
	timeout    time.Duration
}

func NewRemoteStore(rdb *redis.Client, uploader CoverUploader, collection string, timeout time.Duration) *RemoteStore {
	return &RemoteStore{
		rdb:        rdb,
		uploader:   uploader,
		collection: collection,
		timeout:    timeout,
	}
}

func (s *RemoteStore) ListAll(ctx context.Context) ([]models.Cerpen, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("remote", "list")

	docs, err := s.rdb.HGetAll(ctx, s.collection).Result()
	if err != nil {
		return nil, s.unavailable("list", err)
	}

	items := make([]models.Cerpen, 0, len(docs))
	for id, doc := range docs {
		var item models.Cerpen
		if err := json.Unmarshal([]byte(doc), &item); err != nil {
			logrus.WithError(err).WithField("id", id).Warn("skipping corrupt document")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *RemoteStore) GetByID(ctx context.Context, id string) (*models.Cerpen, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("remote", "get")

	doc, err := s.rdb.HGet(ctx, s.collection, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, s.unavailable("get", err)
	}

	var item models.Cerpen
	if err := json.Unmarshal([]byte(doc), &item); err != nil {
		return nil, s.unavailable("get", err)
	}
	return &item, nil
}

// Put resolves an inline cover first, then writes the document. An upload
// failure aborts the write so no document ever points at a missing blob. A
// write failure after a successful upload leaks the blob; that is logged and
// accepted.
func (s *RemoteStore) Put(ctx context.Context, c *models.Cerpen) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("remote", "put")

	uploaded := ""
	if IsDataURI(c.Cover) {
		url, err := s.uploader.UploadDataURI(ctx, c.Cover)
		if err != nil {
			countFailure("remote", "upload")
			return fmt.Errorf("put %s: %w: %v", c.ID, ErrUploadFailed, err)
		}
		c.Cover = url
		uploaded = url
	}

	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode %s: %w: %v", c.ID, ErrWriteFailed, err)
	}
	if err := s.rdb.HSet(ctx, s.collection, c.ID, doc).Err(); err != nil {
		countFailure("remote", "put")
		if uploaded != "" {
			logrus.WithFields(logrus.Fields{"id": c.ID, "cover": uploaded}).
				Warn("document write failed after cover upload, blob orphaned")
		}
		return fmt.Errorf("put %s: %w: %v", c.ID, ErrWriteFailed, err)
	}
	return nil
}

func (s *RemoteStore) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	countOp("remote", "delete")

	if err := s.rdb.HDel(ctx, s.collection, id).Err(); err != nil {
		return s.unavailable("delete", err)
	}
	return nil
}

func (s *RemoteStore) unavailable(op string, err error) error {
	countFailure("remote", op)
	logrus.WithError(err).WithField("op", op).Error("remote store failure")
	return fmt.Errorf("%s: %w", op, ErrStorageUnavailable)
}

// IsDataURI reports whether a cover value is an inline image payload rather
// than empty or an already resolved URL.
func IsDataURI(cover string) bool {
	return strings.HasPrefix(cover, "data:")
}
