package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"tintaku/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCollection = "cerpen"

// stubUploader stands in for blob storage.
type stubUploader struct {
	url   string
	err   error
	calls int
}

func (u *stubUploader) UploadDataURI(ctx context.Context, dataURI string) (string, error) {
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

func newRemoteStore(t *testing.T, uploader CoverUploader) (*RemoteStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRemoteStore(rdb, uploader, testCollection, time.Second), mr
}

// unreachableRemoteStore returns a store whose redis client cannot connect,
// for exercising the failure paths.
func unreachableRemoteStore(uploader CoverUploader) *RemoteStore {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	return NewRemoteStore(rdb, uploader, testCollection, time.Second)
}

func TestRemotePutAndGet(t *testing.T) {
	uploader := &stubUploader{}
	s, _ := newRemoteStore(t, uploader)
	ctx := context.Background()

	item := &models.Cerpen{
		ID:       "c1",
		Title:    "Senja",
		Category: "Kehidupan",
		Date:     "2024-01-01",
		Summary:  "ringkasan",
		Content:  "<p>isi</p>",
	}
	require.NoError(t, s.Put(ctx, item))

	got, err := s.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *item, *got)
	assert.Zero(t, uploader.calls, "no cover, nothing to upload")
}

func TestRemoteGetMissingIsAbsentNotError(t *testing.T) {
	s, _ := newRemoteStore(t, &stubUploader{})

	got, err := s.GetByID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRemotePutResolvesInlineCover(t *testing.T) {
	uploader := &stubUploader{url: "https://blobs.example.com/covers/cover_1.jpg"}
	s, _ := newRemoteStore(t, uploader)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &models.Cerpen{ID: "c1", Title: "A", Cover: "data:image/jpeg;base64,/9j/4AAQ"}))

	got, err := s.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uploader.url, got.Cover, "stored document must point at the uploaded blob, not the data URI")
	assert.Equal(t, 1, uploader.calls)
}

func TestRemotePutKeepsResolvedCover(t *testing.T) {
	uploader := &stubUploader{url: "https://blobs.example.com/other.jpg"}
	s, _ := newRemoteStore(t, uploader)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &models.Cerpen{ID: "c1", Cover: "https://blobs.example.com/covers/cover_2.jpg"}))

	got, err := s.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://blobs.example.com/covers/cover_2.jpg", got.Cover)
	assert.Zero(t, uploader.calls, "an already resolved URL must not be re-uploaded")
}

func TestRemotePutUploadFailureAbortsWrite(t *testing.T) {
	uploader := &stubUploader{err: errors.New("blob storage down")}
	s, mr := newRemoteStore(t, uploader)

	err := s.Put(context.Background(), &models.Cerpen{ID: "c1", Cover: "data:image/jpeg;base64,/9j/4AAQ"})
	require.ErrorIs(t, err, ErrUploadFailed)
	assert.NotErrorIs(t, err, ErrWriteFailed)

	// The document write must never have been attempted, so no record can
	// point at a blob that does not exist.
	assert.False(t, mr.Exists(testCollection))

	got, getErr := s.GetByID(context.Background(), "c1")
	require.NoError(t, getErr)
	assert.Nil(t, got)
}

func TestRemotePutWriteFailureIsDistinctFromUploadFailure(t *testing.T) {
	uploader := &stubUploader{url: "https://blobs.example.com/covers/cover_3.jpg"}
	s := unreachableRemoteStore(uploader)

	err := s.Put(context.Background(), &models.Cerpen{ID: "c1", Cover: "data:image/jpeg;base64,/9j/4AAQ"})
	require.ErrorIs(t, err, ErrWriteFailed)
	assert.NotErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, 1, uploader.calls, "the upload succeeded before the write failed")
}

func TestRemoteListAllSkipsCorruptDocuments(t *testing.T) {
	s, mr := newRemoteStore(t, &stubUploader{})
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &models.Cerpen{ID: "c1", Title: "Satu"}))
	require.NoError(t, s.Put(ctx, &models.Cerpen{ID: "c2", Title: "Dua"}))
	mr.HSet(testCollection, "bad", "{not json")

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	titles := map[string]bool{}
	for _, c := range all {
		titles[c.Title] = true
	}
	assert.True(t, titles["Satu"])
	assert.True(t, titles["Dua"])
}

func TestRemoteDeleteMissingIsNoop(t *testing.T) {
	s, _ := newRemoteStore(t, &stubUploader{})
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &models.Cerpen{ID: "c1"}))
	require.NoError(t, s.DeleteByID(ctx, "ghost"))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteByID(ctx, "c1"))
	got, err := s.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRemoteReadsAreUnavailableWhenRedisIsDown(t *testing.T) {
	s := unreachableRemoteStore(&stubUploader{})
	ctx := context.Background()

	_, err := s.ListAll(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = s.GetByID(ctx, "c1")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestIsDataURI(t *testing.T) {
	assert.True(t, IsDataURI("data:image/jpeg;base64,/9j/4AAQ"))
	assert.False(t, IsDataURI(""))
	assert.False(t, IsDataURI("https://blobs.example.com/covers/cover_1.jpg"))
}
