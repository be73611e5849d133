package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserClause(t *testing.T) {
	where, args := userClause(Filter{})
	require.Empty(t, where)
	require.Empty(t, args)

	where, args = userClause(ForUser(""))
	require.Equal(t, ` WHERE "user" IS NULL`, where)
	require.Empty(t, args)

	where, args = userClause(ForUser("alice"))
	require.Equal(t, ` WHERE "user" = $1`, where)
	require.Equal(t, []any{"alice"}, args)
	require.NotContains(t, where, "COALESCE")
}
