package journal

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	kind TEXT NOT NULL,
	scenario TEXT NOT NULL,
	net_worth REAL NOT NULL,
	risk_score INTEGER NOT NULL,
	confidence REAL NOT NULL,
	summary TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_time ON entries(time);
`
