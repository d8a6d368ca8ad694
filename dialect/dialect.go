package dialect

// Dialect names for the supported SQL dialects.
// SQLite matches the driver name registered by modernc.org/sqlite.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)
