package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Madhulr/to-do-Bend/internal/database"
	"github.com/Madhulr/to-do-Bend/internal/models"
	"github.com/stretchr/testify/require"
)

// testStoreContract exercises behaviour every backend must share.
func testStoreContract(t *testing.T, s Store) {
	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	a1 := &models.Todo{Title: "first", User: "alice"}
	b1 := &models.Todo{Title: "other", User: "bob"}
	a2 := &models.Todo{Title: "second", User: "alice", Description: "d"}
	orphan := &models.Todo{Title: "nobody"}
	for _, td := range []*models.Todo{a1, b1, a2, orphan} {
		require.NoError(t, s.CreateTodo(ctx, td))
		require.NotZero(t, td.ID)
		require.False(t, td.CreatedAt.IsZero())
	}
	require.Less(t, a1.ID, a2.ID)

	got, err := s.GetTodo(ctx, a2.ID)
	require.NoError(t, err)
	require.Equal(t, "second", got.Title)
	require.Equal(t, "d", got.Description)
	require.Equal(t, "alice", got.User)
	require.False(t, got.Completed)

	o, err := s.GetTodo(ctx, orphan.ID)
	require.NoError(t, err)
	require.Equal(t, "", o.User)

	list, err := s.ListTodos(ctx, ForUser("alice"))
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, a2.ID, list[0].ID)
	require.Equal(t, a1.ID, list[1].ID)

	all, err := s.ListTodos(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 4)

	ownerless, err := s.ListTodos(ctx, ForUser(""))
	require.NoError(t, err)
	require.Len(t, ownerless, 1)
	require.Equal(t, orphan.ID, ownerless[0].ID)

	none, err := s.ListTodos(ctx, ForUser("carol"))
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)

	upd, err := s.SetTodoCompleted(ctx, a1.ID, true)
	require.NoError(t, err)
	require.True(t, upd.Completed)
	require.Equal(t, "first", upd.Title)

	require.NoError(t, s.DeleteTodo(ctx, b1.ID))
	_, err = s.GetTodo(ctx, b1.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.DeleteTodo(ctx, b1.ID), ErrNotFound)
	_, err = s.SetTodoCompleted(ctx, b1.ID, true)
	require.ErrorIs(t, err, ErrNotFound)

	next := &models.Todo{Title: "after delete", User: "bob"}
	require.NoError(t, s.CreateTodo(ctx, next))
	require.Greater(t, next.ID, orphan.ID)

	fb := &models.Feedback{Message: "hello", User: "alice"}
	require.NoError(t, s.CreateFeedback(ctx, fb))
	require.NotZero(t, fb.ID)
	gotFb, err := s.GetFeedback(ctx, fb.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", gotFb.Message)
	require.Nil(t, gotFb.AdminReply)

	fbs, err := s.ListFeedback(ctx, ForUser("alice"))
	require.NoError(t, err)
	require.Len(t, fbs, 1)
	_, err = s.GetFeedback(ctx, fb.ID+1000)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreContract(t *testing.T) {
	m := NewMemoryStore()
	base := time.Now()
	n := 0
	m.SetClock(func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Millisecond)
	})
	testStoreContract(t, m)
}

// Set MONGODB_TEST_URI to run against a live server; each run uses a throwaway database.
func TestMongoStoreContract(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, uri, 10*time.Second)
	require.NoError(t, err)
	db := client.Database(fmt.Sprintf("todo_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	s, err := NewMongoStore(ctx, nil, db)
	require.NoError(t, err)
	testStoreContract(t, s)
}

// Set POSTGRES_TEST_DSN to run; the todos and feedback tables are truncated first.
func TestPostgresStoreContract(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()
	pool, err := database.ConnectPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s, err := NewPostgresStore(ctx, pool)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE todos, feedback RESTART IDENTITY`)
	require.NoError(t, err)
	testStoreContract(t, s)
}
