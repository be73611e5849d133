package todos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Madhulr/to-do-Bend/internal/store"
	"github.com/Madhulr/to-do-Bend/internal/validation"
	"github.com/Madhulr/to-do-Bend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct {
	calls int
	err   error
}

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.calls++
	return c.err
}

func newService(t *testing.T) (*Service, *store.MemoryStore, *countingInvalidator) {
	t.Helper()
	mem := store.NewMemoryStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	mem.SetClock(func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	})
	inv := &countingInvalidator{}
	return NewService(mem, inv), mem, inv
}

func boolPtr(b bool) *bool { return &b }

func TestCreateAndGetOwned(t *testing.T) {
	svc, _, inv := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", "  Buy milk ", "two litres")
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "Buy milk", created.Title)
	require.False(t, created.Completed)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, 1, inv.calls)

	got, err := svc.GetOwned(ctx, "alice", created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Title, got.Title)
	require.Equal(t, created.Description, got.Description)
	require.Equal(t, created.Completed, got.Completed)
	require.Equal(t, "alice", got.User)
}

func TestCreateValidation(t *testing.T) {
	svc, mem, inv := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "   ", "")
	require.True(t, validation.IsError(err))

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	_, err = svc.Create(ctx, "alice", string(long), "")
	require.True(t, validation.IsError(err))

	_, err = svc.Create(ctx, string(long[:101]), "ok", "")
	require.True(t, validation.IsError(err))

	all, err := mem.ListTodos(ctx, store.Filter{})
	require.NoError(t, err)
	require.Empty(t, all)
	require.Zero(t, inv.calls)
}

func TestListScopesToOwnerNewestFirst(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	first, _ := svc.Create(ctx, "alice", "first", "")
	_, _ = svc.Create(ctx, "bob", "bob's", "")
	second, _ := svc.Create(ctx, "alice", "second", "")

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)

	none, err := svc.List(ctx, "ALICE")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestListWithoutUsernameIsEmpty(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	_, _ = svc.Create(ctx, "alice", "a", "")
	_, _ = svc.Create(ctx, "", "ownerless", "")

	list, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestGetOwnedRejectsOtherOwner(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	t1, _ := svc.Create(ctx, "bob", "secret", "")

	_, err := svc.GetOwned(ctx, "alice", t1.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.GetOwned(ctx, "alice", 999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateCompletedOnlyTouchesCompleted(t *testing.T) {
	svc, _, inv := newService(t)
	ctx := context.Background()
	created, _ := svc.Create(ctx, "alice", "Buy milk", "semi-skimmed")

	updated, err := svc.UpdateCompleted(ctx, "alice", created.ID, boolPtr(true))
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, "Buy milk", updated.Title)
	require.Equal(t, "semi-skimmed", updated.Description)
	require.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	require.Equal(t, 2, inv.calls)

	_, err = svc.UpdateCompleted(ctx, "alice", created.ID, nil)
	require.True(t, validation.IsError(err))

	_, err = svc.UpdateCompleted(ctx, "mallory", created.ID, boolPtr(false))
	require.ErrorIs(t, err, store.ErrNotFound)

	got, _ := svc.GetOwned(ctx, "alice", created.ID)
	require.True(t, got.Completed)
}

func TestDeleteThenGetOwned(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	created, _ := svc.Create(ctx, "alice", "gone soon", "")

	require.ErrorIs(t, svc.Delete(ctx, "bob", created.ID), store.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "alice", created.ID))

	_, err := svc.GetOwned(ctx, "alice", created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "alice", created.ID), store.ErrNotFound)
}

func TestInvalidatorFailureDoesNotFailWrite(t *testing.T) {
	mem := store.NewMemoryStore()
	inv := &countingInvalidator{err: errors.New("redis down")}
	svc := NewService(mem, inv)

	_, err := svc.Create(context.Background(), "alice", "still saved", "")
	require.NoError(t, err)
	require.Equal(t, 1, inv.calls)
}

func TestNilInvalidator(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), nil)
	_, err := svc.Create(context.Background(), "alice", "fine", "")
	require.NoError(t, err)
}

func TestOperationsCounted(t *testing.T) {
	svc, _, _ := newService(t)
	c := metrics.Operations.WithLabelValues("todo", "get", "not_found")
	before := testutil.ToFloat64(c)

	_, _ = svc.GetOwned(context.Background(), "alice", 42)
	require.Equal(t, 1.0, testutil.ToFloat64(c)-before)
}
