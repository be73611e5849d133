package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Madhulr/to-do-Bend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS todos (
	id          BIGSERIAL PRIMARY KEY,
	title       VARCHAR(200) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	completed   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	"user"      VARCHAR(100)
);
CREATE INDEX IF NOT EXISTS todos_user_created_at_idx ON todos ("user", created_at DESC);

CREATE TABLE IF NOT EXISTS feedback (
	id          BIGSERIAL PRIMARY KEY,
	message     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	admin_reply TEXT,
	"user"      VARCHAR(100)
);
CREATE INDEX IF NOT EXISTS feedback_user_created_at_idx ON feedback ("user", created_at DESC);
`

const (
	todoColumns     = `id, title, description, completed, created_at, COALESCE("user", '')`
	feedbackColumns = `id, message, created_at, admin_reply, COALESCE("user", '')`
)

// PostgresStore implements Store with a pgx connection pool.
// An empty owner is stored as NULL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates the tables when they are missing.
func NewPostgresStore(ctx context.Context, db *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := db.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// userClause filters on the owner column directly so the ("user", created_at)
// indexes apply. The empty owner is stored as NULL.
func userClause(f Filter) (string, []any) {
	switch {
	case f.User == nil:
		return "", nil
	case *f.User == "":
		return ` WHERE "user" IS NULL`, nil
	}
	return ` WHERE "user" = $1`, []any{*f.User}
}

func scanTodo(row pgx.Row) (*models.Todo, error) {
	var t models.Todo
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.User); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	var fb models.Feedback
	if err := row.Scan(&fb.ID, &fb.Message, &fb.CreatedAt, &fb.AdminReply, &fb.User); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	fb.CreatedAt = fb.CreatedAt.UTC()
	return &fb, nil
}

func (s *PostgresStore) CreateTodo(ctx context.Context, t *models.Todo) error {
	query := `
		INSERT INTO todos (title, description, completed, "user")
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING ` + todoColumns
	out, err := scanTodo(s.db.QueryRow(ctx, query, t.Title, t.Description, t.Completed, t.User))
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	*t = *out
	return nil
}

func (s *PostgresStore) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	return scanTodo(s.db.QueryRow(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id))
}

func (s *PostgresStore) ListTodos(ctx context.Context, f Filter) ([]*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos`
	where, args := userClause(f)
	query += where
	query += ` ORDER BY created_at DESC, id DESC`
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SetTodoCompleted(ctx context.Context, id int64, completed bool) (*models.Todo, error) {
	query := `UPDATE todos SET completed = $2 WHERE id = $1 RETURNING ` + todoColumns
	return scanTodo(s.db.QueryRow(ctx, query, id, completed))
}

func (s *PostgresStore) DeleteTodo(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateFeedback(ctx context.Context, fb *models.Feedback) error {
	query := `
		INSERT INTO feedback (message, admin_reply, "user")
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING ` + feedbackColumns
	out, err := scanFeedback(s.db.QueryRow(ctx, query, fb.Message, fb.AdminReply, fb.User))
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	*fb = *out
	return nil
}

func (s *PostgresStore) GetFeedback(ctx context.Context, id int64) (*models.Feedback, error) {
	return scanFeedback(s.db.QueryRow(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE id = $1`, id))
}

func (s *PostgresStore) ListFeedback(ctx context.Context, f Filter) ([]*models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback`
	where, args := userClause(f)
	query += where
	query += ` ORDER BY created_at DESC, id DESC`
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*models.Feedback{}
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close(ctx context.Context) error {
	s.db.Close()
	return nil
}
