package sqlite

import (
	"context"
	stdsql "database/sql"
	"database/sql/driver"
	"regexp"
	"sync"
	"testing"

	"github.com/syssam/upsert/dialect"
	"github.com/syssam/upsert/dialect/sql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

const usersDDL = `
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	count INTEGER NOT NULL DEFAULT 0,
	deleted_at DATETIME
);
CREATE UNIQUE INDEX users_name ON users(name) WHERE deleted_at IS NULL;
`

func openDB(t *testing.T) *stdsql.DB {
	t.Helper()
	db, err := stdsql.Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	// Every connection to ":memory:" opens a new database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(usersDDL)
	require.NoError(t, err)
	return db
}

func exec(t *testing.T, db *stdsql.DB, i *InsertBuilder) int64 {
	t.Helper()
	query, args, err := i.Query()
	require.NoError(t, err)
	res, err := db.ExecContext(context.Background(), query, args...)
	require.NoError(t, err, query)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	return n
}

func TestUpsert_SQLite(t *testing.T) {
	users := newTable()
	db := openDB(t)
	id := uuid.New()

	t.Run("DoUpdateIncrement", func(t *testing.T) {
		ins := Insert(users).Columns("id", "name", "count").Values(id, "a8m", 1)
		up := mustUpdate(t, ins,
			UpdateSet{Set("count", users.C("count").Add(ins.Excluded().C("count")))},
			IndexElements("id"),
		)
		for range 3 {
			assert.EqualValues(t, 1, exec(t, db, up))
		}
		var count int
		require.NoError(t, db.QueryRow("SELECT count FROM users WHERE id = ?", id).Scan(&count))
		assert.Equal(t, 3, count)
	})

	t.Run("DoNothing", func(t *testing.T) {
		ins := Insert(users).Columns("id", "name").Values(id, "nati").OnConflictDoNothing(IndexElements("id"))
		assert.EqualValues(t, 0, exec(t, db, ins))
		var name string
		require.NoError(t, db.QueryRow("SELECT name FROM users WHERE id = ?", id).Scan(&name))
		assert.Equal(t, "a8m", name)
	})

	t.Run("DoNothingPartialIndex", func(t *testing.T) {
		other := uuid.New()
		ins := Insert(users).Columns("id", "name").Values(other, "a8m").
			OnConflictDoNothing(IndexElements("name"), IndexWhere(sql.IsNull("deleted_at")))
		assert.EqualValues(t, 0, exec(t, db, ins))
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n))
		assert.Equal(t, 1, n)
	})

	t.Run("DoUpdateWhere", func(t *testing.T) {
		ins := Insert(users).Columns("id", "name", "count").Values(id, "a8m", 1)
		up := mustUpdate(t, ins,
			UpdateSet{Set("count", ins.Excluded().C("count"))},
			IndexElements("id"),
			Where(sql.LT(users.C("count"), ins.Excluded().C("count"))),
		)
		// 3 < 1 is false, the row is left as is.
		assert.EqualValues(t, 0, exec(t, db, up))

		ins = Insert(users).Columns("id", "name", "count").Values(id, "a8m", 10)
		up = mustUpdate(t, ins,
			UpdateSet{Set("count", ins.Excluded().C("count"))},
			IndexElements("id"),
			Where(sql.LT(users.C("count"), ins.Excluded().C("count"))),
		)
		assert.EqualValues(t, 1, exec(t, db, up))
	})

	t.Run("Returning", func(t *testing.T) {
		ins := Insert(users).Columns("id", "name", "count").Values(id, "a8m", 5).Returning("id", "count")
		up := mustUpdate(t, ins, UpdateSet{Set("count", users.C("count").Sub(ins.Excluded().C("count")))}, IndexElements("id"))
		query, args, err := up.Query()
		require.NoError(t, err)
		var (
			got   uuid.UUID
			count int
		)
		require.NoError(t, db.QueryRow(query, args...).Scan(&got, &count))
		assert.Equal(t, id, got)
		assert.Equal(t, 5, count)
	})

	t.Run("NoTarget", func(t *testing.T) {
		ins := Insert(users).Columns("id", "name").Values(id, "a8m").OnConflictDoNothing()
		assert.EqualValues(t, 0, exec(t, db, ins))
	})

	t.Run("TargetWithoutConstraint", func(t *testing.T) {
		ins := Insert(users).Columns("id", "name", "count").Values(uuid.New(), "b", 1).
			OnConflictDoNothing(IndexElements("count"))
		query, args, err := ins.Query()
		require.NoError(t, err)
		_, err = db.Exec(query, args...)
		require.Error(t, err)
		assert.True(t, IsConflictTargetError(err))
		assert.False(t, IsUniqueConstraintError(err))
	})

	t.Run("NoConflictClause", func(t *testing.T) {
		ins := Insert(users).Columns("id", "name").Values(id, "a8m")
		query, args, err := ins.Query()
		require.NoError(t, err)
		_, err = db.Exec(query, args...)
		require.Error(t, err)
		assert.True(t, IsUniqueConstraintError(err))
		assert.False(t, IsConflictTargetError(err))

		// The same row with DO NOTHING is accepted.
		assert.EqualValues(t, 0, exec(t, db, ins.OnConflictDoNothing()))
	})
}

func TestUpsert_Mock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	users := newTable()
	ins := Insert(users).Columns("id", "name", "count").Values(1, "a8m", 1)
	up := mustUpdate(t, ins,
		UpdateSet{
			Set("name", ins.Excluded().C("name")),
			Set("count", users.C("count").Add(1)),
		},
		IndexElements("id"),
		Where(sql.NEQ(users.C("name"), "admin")),
	)
	query, args, err := up.Query()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users` (`id`, `name`, `count`) VALUES (?, ?, ?) ON CONFLICT (`id`) DO UPDATE SET `name` = `excluded`.`name`, `count` = `users`.`count` + ? WHERE `users`.`name` <> ?")).
		WithArgs(1, "a8m", 1, 1, "admin").
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err = db.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_MockBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	users := newTable()
	ins := Insert(users).Columns("id", "name")
	rows := [][]any{{1, "a"}, {2, "b"}, {3, "c"}}
	expected := make([]driver.Value, 0, 6)
	for _, r := range rows {
		ins = ins.Values(r...)
		for _, v := range r {
			expected = append(expected, v)
		}
	}
	query, args, err := ins.OnConflictDoNothing(IndexElements("id")).Query()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(expected...).
		WillReturnResult(sqlmock.NewResult(3, 2))
	res, err := db.Exec(query, args...)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_ExcludedConcurrent(t *testing.T) {
	ins := Insert(newTable()).Columns("id", "count").Values(1, 1)
	const n = 32
	var (
		mu   sync.Mutex
		seen = make(map[*sql.ColumnCollection]int)
		g    errgroup.Group
	)
	for range n {
		g.Go(func() error {
			cols := ins.Excluded()
			mu.Lock()
			seen[cols]++
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Len(t, seen, 1)
	for cols, count := range seen {
		assert.Same(t, ins.Excluded(), cols)
		assert.Equal(t, n, count)
	}
}

func TestInsert_CompileConcurrent(t *testing.T) {
	users := newTable()
	template := Insert(users).Columns("id", "count")
	g, ctx := errgroup.WithContext(context.Background())
	for j := range 16 {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ins := template.Values(j, j)
			up, err := ins.OnConflictDoUpdate(UpdateSet{Set("count", ins.Excluded().C("count"))}, IndexElements("id"))
			if err != nil {
				return err
			}
			_, args, err := up.Query()
			if err != nil {
				return err
			}
			if len(args) != 2 || args[0] != j {
				t.Errorf("unexpected args %v for row %d", args, j)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 0, template.Base().Rows())
}
