// Package feedback implements feedback submission and owner-scoped reads.
package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/Madhulr/to-do-Bend/internal/models"
	"github.com/Madhulr/to-do-Bend/internal/store"
	"github.com/Madhulr/to-do-Bend/internal/validation"
	"github.com/Madhulr/to-do-Bend/pkg/logger"
	"github.com/Madhulr/to-do-Bend/pkg/metrics"
)

const maxUserLen = 100

type Service struct {
	store store.FeedbackStore
}

func NewService(s store.FeedbackStore) *Service {
	return &Service{store: s}
}

// List returns username's feedback newest first; empty username yields an empty list.
func (s *Service) List(ctx context.Context, username string) ([]*models.Feedback, error) {
	if username == "" {
		return []*models.Feedback{}, nil
	}
	list, err := s.store.ListFeedback(ctx, store.ForUser(username))
	observe("list", err)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return list, nil
}

func (s *Service) Create(ctx context.Context, username, message string) (*models.Feedback, error) {
	fb, err := s.create(ctx, username, message)
	observe("create", err)
	return fb, err
}

func (s *Service) create(ctx context.Context, username, message string) (*models.Feedback, error) {
	message, err := validation.Required("message", message)
	if err != nil {
		return nil, err
	}
	if err := validation.MaxLength("user", username, maxUserLen); err != nil {
		return nil, err
	}
	fb := &models.Feedback{Message: message, User: username}
	if err := s.store.CreateFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	logger.Infow("feedback created", "id", fb.ID, "user", fb.User)
	return fb, nil
}

// GetOwned returns feedback id when it belongs to username.
func (s *Service) GetOwned(ctx context.Context, username string, id int64) (*models.Feedback, error) {
	fb, err := s.store.GetFeedback(ctx, id)
	if err == nil && fb.User != username {
		fb, err = nil, store.ErrNotFound
	}
	observe("get", err)
	if err != nil {
		return nil, err
	}
	return fb, nil
}

func observe(op string, err error) {
	outcome := "error"
	switch {
	case err == nil:
		outcome = "ok"
	case validation.IsError(err):
		outcome = "invalid"
	case errors.Is(err, store.ErrNotFound):
		outcome = "not_found"
	}
	metrics.Operations.WithLabelValues("feedback", op, outcome).Inc()
}
