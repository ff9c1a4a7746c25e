package db

type migration struct {
	name string
	sql  string
}

var migrations = []migration{
	{
		name: "create records table",
		sql: `
			CREATE TABLE IF NOT EXISTS records (
				key TEXT PRIMARY KEY,
				value BLOB NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		name: "create activity table",
		sql: `
			CREATE TABLE IF NOT EXISTS activity (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				at_ms INTEGER NOT NULL,
				kind TEXT NOT NULL,
				hazard_id INTEGER NOT NULL DEFAULT 0,
				actor TEXT NOT NULL DEFAULT '',
				points INTEGER NOT NULL DEFAULT 0,
				detail TEXT NOT NULL DEFAULT ''
			);
			CREATE INDEX IF NOT EXISTS idx_activity_hazard ON activity(hazard_id, id);
			CREATE INDEX IF NOT EXISTS idx_activity_actor ON activity(actor);
		`,
	},
}
