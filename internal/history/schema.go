package history

import (
	"database/sql"
	"time"
)

const SchemaVersion = 1

// Run is one completed impact-analysis run.
type Run struct {
	ID             string
	Timestamp      time.Time
	GitMode        string
	BaseBranch     string
	ChangedFiles   int
	ChangedModules int
	ImpactedTests  []string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
  id              TEXT PRIMARY KEY,
  schema_version  INTEGER NOT NULL,
  ts_utc          TEXT NOT NULL,
  git_mode        TEXT NOT NULL,
  base_branch     TEXT NOT NULL DEFAULT '',
  changed_files   INTEGER NOT NULL,
  changed_modules INTEGER NOT NULL,
  impacted_count  INTEGER NOT NULL,
  impacted_json   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs (ts_utc DESC);
`

func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
