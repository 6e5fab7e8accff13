package db

import "fmt"

// migrate runs all database migrations
func (db *DB) migrate() error {
	migrations := []string{
		migrationCreateClients,
		migrationCreateNotes,
		migrationCreateTasks,
		migrationCreateComms,
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationCreateClients = `
CREATE TABLE IF NOT EXISTS clients (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    company TEXT,
    email TEXT NOT NULL,
    phone TEXT,
    value REAL DEFAULT 0,
    potential TEXT DEFAULT 'medium',
    source TEXT,
    stage TEXT NOT NULL DEFAULT 'lead',
    stage_order INTEGER DEFAULT 0,
    created_at TEXT NOT NULL,
    last_contact_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_clients_stage ON clients(stage);
`

const migrationCreateNotes = `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    client_id TEXT NOT NULL,
    content TEXT NOT NULL,
    type TEXT DEFAULT 'general',
    priority TEXT DEFAULT 'medium',
    author TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_notes_client ON notes(client_id);
`

const migrationCreateTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    client_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    type TEXT DEFAULT 'follow-up',
    priority TEXT DEFAULT 'medium',
    status TEXT DEFAULT 'pending',
    due_date TEXT NOT NULL,
    completed_at TEXT,
    reminder_at TEXT,
    reminder_enabled INTEGER DEFAULT 0,
    assignee TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_tasks_client ON tasks(client_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
`

const migrationCreateComms = `
CREATE TABLE IF NOT EXISTS communications (
    id TEXT PRIMARY KEY,
    client_id TEXT NOT NULL,
    type TEXT NOT NULL,
    direction TEXT NOT NULL,
    subject TEXT,
    content TEXT NOT NULL,
    duration_mins INTEGER DEFAULT 0,
    participants TEXT,
    attachments TEXT,
    status TEXT DEFAULT 'completed',
    priority TEXT DEFAULT 'medium',
    outcome TEXT,
    author TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_comms_client ON communications(client_id);
`
