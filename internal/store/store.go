// Package store persists Todo and Feedback records.
//
// Every backend assigns sequential ids and creation timestamps on insert and
// returns lists newest first. Ownership checks live in the services; the store
// only filters by exact owner match when asked to.
package store

import (
	"context"
	"errors"
	"slices"

	"github.com/Madhulr/to-do-Bend/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Filter narrows a list query. The zero Filter matches every record.
type Filter struct {
	User *string
}

// ForUser matches records whose owner equals user exactly.
func ForUser(user string) Filter {
	return Filter{User: &user}
}

func (f Filter) matches(user string) bool {
	return f.User == nil || *f.User == user
}

// TodoStore is the persistence surface used by the todo service and the aggregators.
type TodoStore interface {
	CreateTodo(ctx context.Context, t *models.Todo) error
	GetTodo(ctx context.Context, id int64) (*models.Todo, error)
	ListTodos(ctx context.Context, f Filter) ([]*models.Todo, error)
	SetTodoCompleted(ctx context.Context, id int64, completed bool) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}

// FeedbackStore is the persistence surface used by the feedback service.
type FeedbackStore interface {
	CreateFeedback(ctx context.Context, fb *models.Feedback) error
	GetFeedback(ctx context.Context, id int64) (*models.Feedback, error)
	ListFeedback(ctx context.Context, f Filter) ([]*models.Feedback, error)
}

// Store is a complete backend.
type Store interface {
	TodoStore
	FeedbackStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func sortTodos(list []*models.Todo) {
	slices.SortStableFunc(list, func(a, b *models.Todo) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareDesc(a.ID, b.ID)
	})
}

func sortFeedback(list []*models.Feedback) {
	slices.SortStableFunc(list, func(a, b *models.Feedback) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareDesc(a.ID, b.ID)
	})
}

func compareDesc(a, b int64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}
