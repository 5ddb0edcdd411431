package storage

// schemaSQL defines the verdict table and its query indexes.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS verdicts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	case_id TEXT NOT NULL,
	category TEXT NOT NULL,
	compliant INTEGER NOT NULL,
	violations TEXT NOT NULL DEFAULT '[]',
	evaluated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_verdicts_run ON verdicts(run_id);
CREATE INDEX IF NOT EXISTS idx_verdicts_category ON verdicts(category, compliant);
`
