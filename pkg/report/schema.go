package report

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs table: one row per corpus build
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    finished_at TIMESTAMP,
    source_csv TEXT NOT NULL,
    visited INTEGER DEFAULT 0,
    tokenized INTEGER DEFAULT 0,
    missing INTEGER DEFAULT 0,
    unextractable INTEGER DEFAULT 0,
    failed INTEGER DEFAULT 0
);

-- Files table: one row per FileID visited during a run
CREATE TABLE IF NOT EXISTS files (
    file_row_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    file_id TEXT NOT NULL,
    status TEXT NOT NULL,         -- tokenized, missing, unextractable, failed
    reason TEXT,                  -- skip/failure detail, empty on success
    output_file TEXT,             -- populated only when status = tokenized
    language TEXT,                -- detected language, when checking is on
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, file_id)
);

CREATE INDEX IF NOT EXISTS idx_files_run ON files(run_id);
CREATE INDEX IF NOT EXISTS idx_files_status ON files(run_id, status);
`
