package sql

import (
	"testing"

	"github.com/syssam/upsert/dialect"

	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	users := NewTable("users", "id", "name", "age", "deleted_at")
	excluded := Alias(users, "excluded")

	tests := []struct {
		name      string
		pred      *Predicate
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "EQ",
			pred:      EQ("name", "a8m"),
			wantQuery: "`name` = ?",
			wantArgs:  []any{"a8m"},
		},
		{
			name:      "NEQ",
			pred:      NEQ(users.C("name"), "admin"),
			wantQuery: "`users`.`name` <> ?",
			wantArgs:  []any{"admin"},
		},
		{
			name:      "GT",
			pred:      GT(excluded.C("age"), users.C("age")),
			wantQuery: "`excluded`.`age` > `users`.`age`",
		},
		{
			name:      "GTE/LT/LTE",
			pred:      And(GTE("age", 18), LT("age", 65), LTE("id", 10)),
			wantQuery: "(`age` >= ?) AND (`age` < ?) AND (`id` <= ?)",
			wantArgs:  []any{18, 65, 10},
		},
		{
			name:      "IsNull",
			pred:      IsNull("deleted_at"),
			wantQuery: "`deleted_at` IS NULL",
		},
		{
			name:      "NotNull",
			pred:      NotNull(users.C("deleted_at")),
			wantQuery: "`users`.`deleted_at` IS NOT NULL",
		},
		{
			name:      "In",
			pred:      In("id", 1, 2, 3),
			wantQuery: "`id` IN (?, ?, ?)",
			wantArgs:  []any{1, 2, 3},
		},
		{
			name:      "InEmpty",
			pred:      In("id"),
			wantQuery: "FALSE",
		},
		{
			name:      "NotIn",
			pred:      NotIn("id", 1),
			wantQuery: "`id` NOT IN (?)",
			wantArgs:  []any{1},
		},
		{
			name:      "NotInEmpty",
			pred:      NotIn("id"),
			wantQuery: "TRUE",
		},
		{
			name:      "Or",
			pred:      Or(EQ("name", "a"), EQ("name", "b")),
			wantQuery: "(`name` = ?) OR (`name` = ?)",
			wantArgs:  []any{"a", "b"},
		},
		{
			name:      "AndSingle",
			pred:      And(EQ("name", "a")),
			wantQuery: "`name` = ?",
			wantArgs:  []any{"a"},
		},
		{
			name:      "Not",
			pred:      Not(IsNull("name")),
			wantQuery: "NOT (`name` IS NULL)",
		},
		{
			name:      "Expr",
			pred:      EQ(users.C("age").Add(1), excluded.C("age")),
			wantQuery: "`users`.`age` + ? = `excluded`.`age`",
			wantArgs:  []any{1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := tt.pred.Query()
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestPredicate_Postgres(t *testing.T) {
	b := Dialect(dialect.Postgres).Builder()
	b.Join(And(EQ("name", "a8m"), In("id", 1, 2)))
	query, args := b.Query()
	assert.Equal(t, `("name" = $1) AND ("id" IN ($2, $3))`, query)
	assert.Equal(t, []any{"a8m", 1, 2}, args)
}
