// Package activity derives per-user statistics from the todo and feedback stores.
// Nothing here is persisted; the optional cache only holds a copy of ListAll.
package activity

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Madhulr/to-do-Bend/internal/models"
	"github.com/Madhulr/to-do-Bend/internal/store"
	"github.com/Madhulr/to-do-Bend/pkg/logger"
	"github.com/Madhulr/to-do-Bend/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// Summary is one user's todo statistics.
type Summary struct {
	Username       string     `json:"username"`
	TotalTodos     int        `json:"total_todos"`
	CompletedTodos int        `json:"completed_todos"`
	LastActivity   *time.Time `json:"last_activity"`
}

// Detail is Summary plus the user's records.
type Detail struct {
	Summary
	Todos    []*models.Todo     `json:"todos"`
	Feedback []*models.Feedback `json:"feedback"`
}

// Cache is the subset of cache.ActivityCache used here.
type Cache interface {
	Get(ctx context.Context, dst any) (bool, error)
	Generation(ctx context.Context) (int64, error)
	SetAt(ctx context.Context, gen int64, v any) (bool, error)
}

// flightTimeout bounds a shared ListAll computation once it no longer
// follows the first caller's context.
const flightTimeout = 10 * time.Second

type Service struct {
	todos    store.TodoStore
	feedback store.FeedbackStore
	cache    Cache
	sf       singleflight.Group
}

// NewService returns an aggregator. cache may be nil.
func NewService(todos store.TodoStore, feedback store.FeedbackStore, cache Cache) *Service {
	return &Service{todos: todos, feedback: feedback, cache: cache}
}

// ListAll summarises every owner found in the todo store, most recently active first.
// Concurrent calls under the same cache generation share one computation, so a
// call made after a write never joins a scan that started before it.
func (s *Service) ListAll(ctx context.Context) ([]Summary, error) {
	if s.cache == nil {
		return s.compute(ctx)
	}
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		logger.Warnf("activity cache generation read failed: %v", err)
		return s.compute(ctx)
	}
	v, err, _ := s.sf.Do(strconv.FormatInt(gen, 10), func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		return s.load(fctx, gen)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Summary), nil
}

// load serves the cached summary or computes it and stores it under gen.
func (s *Service) load(ctx context.Context, gen int64) ([]Summary, error) {
	var cached []Summary
	ok, err := s.cache.Get(ctx, &cached)
	if err != nil {
		logger.Warnf("activity cache read failed: %v", err)
	}
	if ok {
		metrics.ActivityCache.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.ActivityCache.WithLabelValues("miss").Inc()
	list, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := s.cache.SetAt(ctx, gen, list)
	switch {
	case err != nil:
		logger.Warnf("activity cache write failed: %v", err)
	case !stored:
		logger.Debugf("activity summary for generation %d superseded, not cached", gen)
	}
	return list, nil
}

func (s *Service) compute(ctx context.Context) ([]Summary, error) {
	all, err := s.todos.ListTodos(ctx, store.Filter{})
	if err != nil {
		return nil, fmt.Errorf("scan todos: %w", err)
	}
	return Summarize(all), nil
}

// Detail assembles username's records and statistics. Unknown users get
// zero counts and empty lists; there is no registry to be unknown to.
func (s *Service) Detail(ctx context.Context, username string) (*Detail, error) {
	todos, err := s.todos.ListTodos(ctx, store.ForUser(username))
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	fbs, err := s.feedback.ListFeedback(ctx, store.ForUser(username))
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return &Detail{
		Summary:  summarizeUser(username, todos),
		Todos:    todos,
		Feedback: fbs,
	}, nil
}

// Summarize groups todos by owner, including the empty owner, and orders
// the groups with SortSummaries.
func Summarize(todos []*models.Todo) []Summary {
	groups := map[string][]*models.Todo{}
	for _, t := range todos {
		groups[t.User] = append(groups[t.User], t)
	}
	out := make([]Summary, 0, len(groups))
	for user, list := range groups {
		out = append(out, summarizeUser(user, list))
	}
	SortSummaries(out)
	return out
}

func summarizeUser(username string, todos []*models.Todo) Summary {
	s := Summary{Username: username, TotalTodos: len(todos)}
	for _, t := range todos {
		if t.Completed {
			s.CompletedTodos++
		}
		if s.LastActivity == nil || t.CreatedAt.After(*s.LastActivity) {
			ts := t.CreatedAt
			s.LastActivity = &ts
		}
	}
	return s
}

// SortSummaries orders by last activity descending with nil last activity
// after every timestamp; ties fall back to username ascending.
func SortSummaries(list []Summary) {
	slices.SortFunc(list, func(a, b Summary) int {
		switch {
		case a.LastActivity == nil && b.LastActivity == nil:
		case a.LastActivity == nil:
			return 1
		case b.LastActivity == nil:
			return -1
		default:
			if c := b.LastActivity.Compare(*a.LastActivity); c != 0 {
				return c
			}
		}
		return strings.Compare(a.Username, b.Username)
	})
}
