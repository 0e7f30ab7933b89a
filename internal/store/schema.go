package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    snapshot_path   TEXT NOT NULL,
    saved_at        TEXT NOT NULL,
    as_of           TEXT NOT NULL,
    total_balance   TEXT NOT NULL,
    total_debt      TEXT NOT NULL,
    emergency_fund  TEXT NOT NULL,
    account_count   INTEGER NOT NULL,
    card_count      INTEGER NOT NULL,
    bill_count      INTEGER NOT NULL,
    PRIMARY KEY (snapshot_path, saved_at)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_as_of ON snapshots(as_of);
`
