// Package todos implements the ownership-scoped todo operations.
package todos

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

const (
	maxTitleLen = 200
	maxUserLen  = 100
)

// Invalidator is notified after every successful mutation so derived views
// (the activity summary cache) never outlive the data they were built from.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service wraps the todo store with validation and the owner check.
type Service struct {
	store store.TodoStore
	inv   Invalidator
}

// NewService returns a Service. inv may be nil.
func NewService(s store.TodoStore, inv Invalidator) *Service {
	return &Service{store: s, inv: inv}
}

// List returns the todos owned by username, newest first.
// An empty username yields an empty list rather than everyone's todos.
func (s *Service) List(ctx context.Context, username string) ([]*models.Todo, error) {
	if username == "" {
		return []*models.Todo{}, nil
	}
	list, err := s.store.ListTodos(ctx, store.ForUser(username))
	observe("list", err)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return list, nil
}

// Create stores a new, not yet completed todo owned by username.
func (s *Service) Create(ctx context.Context, username, title, description string) (*models.Todo, error) {
	t, err := s.create(ctx, username, title, description)
	observe("create", err)
	return t, err
}

func (s *Service) create(ctx context.Context, username, title, description string) (*models.Todo, error) {
	title, err := validation.Required("title", title)
	if err != nil {
		return nil, err
	}
	if err := validation.MaxLength("title", title, maxTitleLen); err != nil {
		return nil, err
	}
	if err := validation.MaxLength("user", username, maxUserLen); err != nil {
		return nil, err
	}
	t := &models.Todo{
		Title:       title,
		Description: description,
		User:        username,
	}
	if err := s.store.CreateTodo(ctx, t); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	logger.Infow("todo created", "id", t.ID, "user", t.User)
	s.invalidate(ctx)
	return t, nil
}

// GetOwned returns todo id when it exists and belongs to username.
// A foreign todo is reported as store.ErrNotFound, same as a missing one.
func (s *Service) GetOwned(ctx context.Context, username string, id int64) (*models.Todo, error) {
	t, err := s.getOwned(ctx, username, id)
	observe("get", err)
	return t, err
}

func (s *Service) getOwned(ctx context.Context, username string, id int64) (*models.Todo, error) {
	t, err := s.store.GetTodo(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Warnw("todo not found", "id", id, "user", username)
		}
		return nil, err
	}
	if t.User != username {
		logger.Warnw("todo not found", "id", id, "user", username)
		return nil, store.ErrNotFound
	}
	return t, nil
}

// UpdateCompleted sets the completed flag and nothing else.
// A nil completed means the field was absent from the request.
func (s *Service) UpdateCompleted(ctx context.Context, username string, id int64, completed *bool) (*models.Todo, error) {
	t, err := s.updateCompleted(ctx, username, id, completed)
	observe("update", err)
	return t, err
}

func (s *Service) updateCompleted(ctx context.Context, username string, id int64, completed *bool) (*models.Todo, error) {
	if _, err := s.getOwned(ctx, username, id); err != nil {
		return nil, err
	}
	if completed == nil {
		return nil, validation.Errorf("completed", "This field may not be null.")
	}
	t, err := s.store.SetTodoCompleted(ctx, id, *completed)
	if err != nil {
		return nil, err
	}
	logger.Infow("todo updated", "id", id, "completed", t.Completed)
	s.invalidate(ctx)
	return t, nil
}

// Delete removes todo id when it belongs to username.
func (s *Service) Delete(ctx context.Context, username string, id int64) error {
	err := s.delete(ctx, username, id)
	observe("delete", err)
	return err
}

func (s *Service) delete(ctx context.Context, username string, id int64) error {
	if _, err := s.getOwned(ctx, username, id); err != nil {
		return err
	}
	if err := s.store.DeleteTodo(ctx, id); err != nil {
		return err
	}
	logger.Infow("todo deleted", "id", id, "user", username)
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.inv == nil {
		return
	}
	if err := s.inv.Invalidate(ctx); err != nil {
		logger.Warnf("activity cache invalidate failed: %v", err)
	}
}

func observe(op string, err error) {
	metrics.Operations.WithLabelValues("todo", op, outcome(err)).Inc()
}

// outcome classifies err for the operations counter.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case validation.IsError(err):
		return "invalid"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	}
	return "error"
}
