package journal

const Schema = `
CREATE TABLE IF NOT EXISTS positions (
	id TEXT PRIMARY KEY,
	ticker TEXT NOT NULL,
	market TEXT NOT NULL,
	entry_date TEXT NOT NULL,
	entry_price REAL NOT NULL,
	atr REAL NOT NULL,
	max_price REAL NOT NULL,
	stop_loss REAL NOT NULL,
	take_profit REAL NOT NULL,
	expiry_date TEXT NOT NULL,
	status TEXT NOT NULL,
	exit_date TEXT,
	exit_price REAL,
	pct_change REAL
);

CREATE INDEX IF NOT EXISTS idx_positions_market ON positions(market);
CREATE INDEX IF NOT EXISTS idx_positions_exit_date ON positions(exit_date);
`
