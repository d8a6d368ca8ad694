package sql

import (
	"testing"

	"github.com/syssam/upsert/dialect"
)

func BenchmarkInsertBuilder_Default(b *testing.B) {
	users := NewTable("users", "id")
	for _, d := range []string{dialect.SQLite, dialect.MySQL, dialect.Postgres} {
		b.Run(d, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Dialect(d).Insert(users).Default().Returning("id").Query()
			}
		})
	}
}

func BenchmarkInsertBuilder_Small(b *testing.B) {
	users := NewTable("users", "id", "age", "first_name", "last_name", "nickname", "spouse_id", "created_at", "updated_at")
	for _, d := range []string{dialect.SQLite, dialect.MySQL, dialect.Postgres} {
		b.Run(d, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Dialect(d).Insert(users).
					Columns("id", "age", "first_name", "last_name", "nickname", "spouse_id", "created_at", "updated_at").
					Values(1, 30, "Ariel", "Mashraki", "a8m", 2, "2009-11-10 23:00:00", "2009-11-10 23:00:00").
					Returning("id").
					Query()
			}
		})
	}
}

func BenchmarkPredicate_And(b *testing.B) {
	users := NewTable("users", "id", "name", "age", "deleted_at")
	for _, d := range []string{dialect.SQLite, dialect.MySQL, dialect.Postgres} {
		b.Run(d, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sb := Dialect(d).Builder()
				sb.Join(And(
					EQ(users.C("name"), "a8m"),
					GT(users.C("age"), 18),
					IsNull(users.C("deleted_at")),
					In(users.C("id"), 1, 2, 3),
				))
				sb.Query()
			}
		})
	}
}
