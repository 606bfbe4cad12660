package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS workspace (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    document             TEXT NOT NULL,
    company              TEXT,
    scenario_count       INTEGER NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS metric_snapshots (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    scenario_id          TEXT NOT NULL,
    recorded_at          TEXT NOT NULL,
    current_cash         REAL NOT NULL,
    monthly_revenue      REAL NOT NULL,
    monthly_costs        REAL NOT NULL,
    monthly_burn         REAL NOT NULL,
    runway_months        REAL,
    break_even_month     INTEGER,
    risk_score           INTEGER NOT NULL,
    risk_level           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_scenario ON metric_snapshots(scenario_id, recorded_at);
`
