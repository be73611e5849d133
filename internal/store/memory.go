package store

import (
	"context"
	"sync"
	"time"

	"github.com/Madhulr/to-do-Bend/internal/models"
)

// MemoryStore keeps records in process memory. It backs unit tests and
// deployments without a database. Callers always receive copies.
type MemoryStore struct {
	mu       sync.RWMutex
	todos    map[int64]*models.Todo
	feedback map[int64]*models.Feedback
	todoSeq  int64
	fbSeq    int64
	now      func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		todos:    make(map[int64]*models.Todo),
		feedback: make(map[int64]*models.Feedback),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the timestamp source used for created_at.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryStore) CreateTodo(ctx context.Context, t *models.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.todoSeq++
	t.ID = m.todoSeq
	t.CreatedAt = m.now()
	cp := *t
	m.todos[t.ID] = &cp
	return nil
}

func (m *MemoryStore) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemoryStore) ListTodos(ctx context.Context, f Filter) ([]*models.Todo, error) {
	m.mu.RLock()
	out := make([]*models.Todo, 0, len(m.todos))
	for _, t := range m.todos {
		if f.matches(t.User) {
			cp := *t
			out = append(out, &cp)
		}
	}
	m.mu.RUnlock()
	sortTodos(out)
	return out, nil
}

func (m *MemoryStore) SetTodoCompleted(ctx context.Context, id int64, completed bool) (*models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Completed = completed
	cp := *t
	return &cp, nil
}

func (m *MemoryStore) DeleteTodo(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.todos[id]; !ok {
		return ErrNotFound
	}
	delete(m.todos, id)
	return nil
}

func (m *MemoryStore) CreateFeedback(ctx context.Context, fb *models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fbSeq++
	fb.ID = m.fbSeq
	fb.CreatedAt = m.now()
	cp := *fb
	m.feedback[fb.ID] = &cp
	return nil
}

func (m *MemoryStore) GetFeedback(ctx context.Context, id int64) (*models.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fb, ok := m.feedback[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *fb
	return &cp, nil
}

func (m *MemoryStore) ListFeedback(ctx context.Context, f Filter) ([]*models.Feedback, error) {
	m.mu.RLock()
	out := make([]*models.Feedback, 0, len(m.feedback))
	for _, fb := range m.feedback {
		if f.matches(fb.User) {
			cp := *fb
			out = append(out, &cp)
		}
	}
	m.mu.RUnlock()
	sortFeedback(out)
	return out, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

func (m *MemoryStore) Close(ctx context.Context) error { return nil }
