// Package sql provides the SQL statement building primitives shared by
// the dialect packages.
//
// # Tables and columns
//
// Statements are built against *Table handles. A table knows its
// columns, so column names given to a builder are resolved and checked
// before anything is rendered:
//
//	users := sql.NewTable("users", "id", "name", "count")
//	users.C("count")                  // `users`.`count`
//	sql.Alias(users, "excluded").C("count") // `excluded`.`count`
//
// ExpectColumn is the coercion service used by the builders. It turns a
// column name, a *Column or a ColumnNamer into the canonical column of
// a table, or fails with an error matching ErrUnknownColumn.
//
// # Builder
//
// Builder is the low-level string builder. It quotes identifiers and
// writes placeholders according to its dialect, and collects the errors
// met while rendering:
//
//	b := sql.Dialect(dialect.Postgres).Builder()
//	b.Join(sql.EQ(users.C("name"), "a8m"))
//	b.Query() // "users"."name" = $1, [a8m]
//
// Nodes implementing Appender (tables, columns, expressions and
// predicates) render through the enclosing Builder, so they follow its
// quoting and placeholder style.
//
// # Expressions and predicates
//
//	users.C("count").Add(1)                     // `users`.`count` + ?
//	sql.And(sql.NotNull("email"), sql.GT("age", 18))
//	sql.ExprP("json_extract(`data`, ?)", "$.name")
//
// # INSERT
//
// InsertBuilder renders the standard `INSERT INTO` statement. Its
// setters are generative: each returns a new builder and leaves the
// receiver as it was. Dialect packages, such as sqlite, extend it with
// their own clauses.
package sql
