package services

import (
	"context"
	"strings"
	"time"

	"tintaku/internal/models"
	"tintaku/internal/store"
)

// AnonymousName labels comments submitted without a name.
const AnonymousName = "Anon"

// EngagementService handles reader interactions: comments and likes.
type EngagementService struct {
	side *store.SideStore
}

func NewEngagementService(side *store.SideStore) *EngagementService {
	return &EngagementService{side: side}
}

// Comments returns a story's comments, newest first, with the anonymous
// label applied.
func (s *EngagementService) Comments(ctx context.Context, cerpenID string) ([]models.Comment, error) {
	comments, err := s.side.GetComments(ctx, cerpenID)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if comments[i].Name == "" {
			comments[i].Name = AnonymousName
		}
	}
	return comments, nil
}

// AddComment stores a reader comment at the head of the story's list. Text
// is required; the timestamp is set here.
func (s *EngagementService) AddComment(ctx context.Context, cerpenID, name, text string) (models.Comment, error) {
	entry := models.Comment{
		Name: strings.TrimSpace(name),
		Text: strings.TrimSpace(text),
		Date: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.side.AppendComment(ctx, cerpenID, &entry); err != nil {
		return entry, err
	}
	if entry.Name == "" {
		entry.Name = AnonymousName
	}
	return entry, nil
}

// Likes returns the story's counter with the caller's device flag filled in.
func (s *EngagementService) Likes(ctx context.Context, cerpenID string, liked bool) (models.LikeCounter, error) {
	counter, err := s.side.GetLikes(ctx, cerpenID)
	if err != nil {
		return counter, err
	}
	counter.Liked = liked
	return counter, nil
}

// ToggleLike flips the caller's like state and moves the shared counter.
func (s *EngagementService) ToggleLike(ctx context.Context, cerpenID string, liked bool) (models.LikeCounter, error) {
	return s.side.ToggleLike(ctx, cerpenID, liked)
}
