package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"tintaku/internal/models"
	"tintaku/internal/seed"
	"tintaku/internal/store"
	"tintaku/internal/utils"

	"github.com/sirupsen/logrus"
)

// ErrInvalidImport is returned when an import payload is not a JSON array of
// story records. Nothing is written when it is returned.
var ErrInvalidImport = errors.New("invalid import payload")

const (
	listCacheKey = "cerpen:all"
	listCacheTTL = time.Minute
	// DefaultPerPage is the page size for list responses.
	DefaultPerPage = 12
)

// ListOptions filter, sort and paginate the merged collection.
type ListOptions struct {
	Query    string
	Category string
	Sort     string // "newest" (default) or "alpha"
	Page     int
	PerPage  int
}

// CreateInput is an admin story submission.
type CreateInput struct {
	Title    string `json:"title" binding:"required"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Summary  string `json:"summary"`
	Content  string `json:"content" binding:"required"`
	Cover    string `json:"cover"`
	// Format selects how Content is interpreted: "html" (default, sanitized)
	// or "markdown" (rendered then sanitized).
	Format string `json:"format"`
}

// CerpenService serves the story collection: every read goes through the
// seed merge (stored records win on id collision), every write goes straight
// to the record store.
type CerpenService struct {
	store store.RecordStore
	seed  []models.Cerpen
	cache *utils.Cache
}

func NewCerpenService(recordStore store.RecordStore, seedData []models.Cerpen, cache *utils.Cache) *CerpenService {
	return &CerpenService{store: recordStore, seed: seedData, cache: cache}
}

// collection returns the merged seed+stored collection, cached briefly.
func (s *CerpenService) collection(ctx context.Context) ([]models.Cerpen, error) {
	if cached := s.cache.Get(listCacheKey); cached != nil {
		if items, ok := cached.([]models.Cerpen); ok {
			return items, nil
		}
	}

	stored, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	merged := seed.Merge(s.seed, stored)
	s.cache.Set(listCacheKey, merged, listCacheTTL)
	return merged, nil
}

// List applies filters, sorting and pagination over the merged collection.
func (s *CerpenService) List(ctx context.Context, opt ListOptions) (items []models.Cerpen, total int, err error) {
	all, err := s.collection(ctx)
	if err != nil {
		return nil, 0, err
	}

	out := make([]models.Cerpen, 0, len(all))
	q := strings.ToLower(strings.TrimSpace(opt.Query))
	for _, c := range all {
		if q != "" {
			haystack := strings.ToLower(c.Title + " " + c.Summary + " " + c.Content)
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		if opt.Category != "" && c.Category != opt.Category {
			continue
		}
		out = append(out, c)
	}

	if opt.Sort == "alpha" {
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	} else {
		// ISO dates sort lexically
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Date > out[j].Date
		})
	}

	total = len(out)
	perPage := opt.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := opt.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= total {
		return []models.Cerpen{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

// Get looks a story up by id; stored records shadow seed records.
func (s *CerpenService) Get(ctx context.Context, id string) (*models.Cerpen, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil || item != nil {
		return item, err
	}
	for _, c := range s.seed {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

// Random picks one story from the merged collection, nil when empty.
func (s *CerpenService) Random(ctx context.Context) (*models.Cerpen, error) {
	all, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	pick := all[rand.Intn(len(all))]
	return &pick, nil
}

// Categories lists the distinct categories in the merged collection, sorted.
func (s *CerpenService) Categories(ctx context.Context) ([]string, error) {
	all, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(all))
	for _, c := range all {
		if c.Category != "" {
			set[c.Category] = struct{}{}
		}
	}
	cats := make([]string, 0, len(set))
	for cat := range set {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats, nil
}

// Create stores a new story. The id is generated here; the category falls
// back to the default label and the date to today when absent.
func (s *CerpenService) Create(ctx context.Context, in CreateInput) (*models.Cerpen, error) {
	content := utils.SanitizeHTML(in.Content)
	if in.Format == "markdown" {
		content = utils.RenderMarkdown(in.Content)
	}

	item := &models.Cerpen{
		ID:       utils.NewCerpenID(),
		Title:    strings.TrimSpace(in.Title),
		Category: strings.TrimSpace(in.Category),
		Date:     in.Date,
		Summary:  strings.TrimSpace(in.Summary),
		Content:  content,
		Cover:    in.Cover,
	}
	if item.Category == "" {
		item.Category = models.DefaultCategory
	}
	if item.Date == "" {
		item.Date = time.Now().UTC().Format("2006-01-02")
	}

	if err := s.store.Put(ctx, item); err != nil {
		return nil, err
	}
	s.cache.Delete(listCacheKey)

	logrus.WithFields(logrus.Fields{"id": item.ID, "title": item.Title}).Info("cerpen created")
	return item, nil
}

// Delete removes a story. Deleting an unknown id is a no-op.
func (s *CerpenService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(listCacheKey)
	return nil
}

// Export serializes the merged collection as a pretty-printed JSON array.
func (s *CerpenService) Export(ctx context.Context) ([]byte, error) {
	all, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(all, "", "  ")
}

// Import upserts every record of a JSON array by id. The whole payload is
// parsed and validated before the first write, so a malformed payload leaves
// the collection untouched.
func (s *CerpenService) Import(ctx context.Context, data []byte) (int, error) {
	var items []models.Cerpen
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("parse: %w", ErrInvalidImport)
	}
	for i := range items {
		if items[i].ID == "" {
			return 0, fmt.Errorf("record %d has no id: %w", i, ErrInvalidImport)
		}
	}

	for i := range items {
		items[i].Content = utils.SanitizeHTML(items[i].Content)
		if err := s.store.Put(ctx, &items[i]); err != nil {
			// Records before i are already written and must become visible.
			s.cache.Delete(listCacheKey)
			return i, err
		}
	}
	s.cache.Delete(listCacheKey)

	logrus.WithField("count", len(items)).Info("cerpen import finished")
	return len(items), nil
}
