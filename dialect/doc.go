// Package dialect names the SQL dialects understood by the builders in this module.
//
// The dialect decides identifier quoting and placeholder style when a statement
// is rendered:
//
//	dialect.SQLite   = "sqlite"    // `ident`, ?
//	dialect.MySQL    = "mysql"     // `ident`, ?
//	dialect.Postgres = "postgres"  // "ident", $1
//
// # Sub-packages
//
//   - dialect/sql: expression tree, table metadata, coercion and the standard INSERT builder
//   - dialect/sql/schema: table metadata model, atlas conversion and conflict-target validation
//   - dialect/sql/sqlite: INSERT ... ON CONFLICT DO NOTHING / DO UPDATE for SQLite
//
// SQLite is also the driver name registered by modernc.org/sqlite, so the constant
// can be passed straight to database/sql:
//
//	db, err := sql.Open(dialect.SQLite, "file:test?mode=memory")
package dialect
