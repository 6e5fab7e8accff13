package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/emprendo/copiloto/internal/model"
	"github.com/emprendo/copiloto/internal/pipeline"
)

// SaveSnapshot writes the whole snapshot in one transaction,
// replacing whatever was stored before. Snapshots are small (a single
// user's pipeline), so a full rewrite is simpler than diffing.
func (db *DB) SaveSnapshot(snap pipeline.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"communications", "tasks", "notes", "clients"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	// Bucket position per client, from the stage-order lists.
	pos := make(map[string]int, len(snap.Clients))
	for _, ids := range snap.StageOrder {
		for i, id := range ids {
			pos[id] = i
		}
	}

	for _, c := range snap.Clients {
		_, err := tx.Exec(`
			INSERT INTO clients (id, name, company, email, phone, value, potential, source, stage, stage_order, created_at, last_contact_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Company, c.Email, c.Phone, c.Value, string(c.Potential), c.Source,
			string(c.Status), pos[c.ID], fmtTime(c.CreatedAt), fmtTime(c.LastContactAt))
		if err != nil {
			return fmt.Errorf("failed to insert client: %w", err)
		}
	}

	for _, n := range snap.Notes {
		_, err := tx.Exec(`
			INSERT INTO notes (id, client_id, content, type, priority, author, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			n.ID, n.ClientID, n.Content, string(n.Type), string(n.Priority), n.Author,
			fmtTime(n.CreatedAt), fmtTime(n.UpdatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}
	}

	for _, t := range snap.Tasks {
		var completedAt sql.NullString
		if t.CompletedAt != nil {
			completedAt = sql.NullString{String: fmtTime(*t.CompletedAt), Valid: true}
		}
		var reminderAt sql.NullString
		reminderEnabled := false
		if t.Reminder != nil {
			reminderAt = sql.NullString{String: fmtTime(t.Reminder.At), Valid: true}
			reminderEnabled = t.Reminder.Enabled
		}
		_, err := tx.Exec(`
			INSERT INTO tasks (id, client_id, title, description, type, priority, status, due_date, completed_at, reminder_at, reminder_enabled, assignee, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.ClientID, t.Title, t.Description, string(t.Type), string(t.Priority), string(t.Status),
			fmtTime(t.DueDate), completedAt, reminderAt, reminderEnabled, t.Assignee,
			fmtTime(t.CreatedAt), fmtTime(t.UpdatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert task: %w", err)
		}
	}

	for _, cm := range snap.Comms {
		participants, _ := json.Marshal(cm.Participants)
		attachments, _ := json.Marshal(cm.Attachments)
		_, err := tx.Exec(`
			INSERT INTO communications (id, client_id, type, direction, subject, content, duration_mins, participants, attachments, status, priority, outcome, author, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			cm.ID, cm.ClientID, string(cm.Type), string(cm.Direction), cm.Subject, cm.Content,
			cm.DurationMins, string(participants), string(attachments), string(cm.Status),
			string(cm.Priority), string(cm.Outcome), cm.Author,
			fmtTime(cm.CreatedAt), fmtTime(cm.UpdatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert communication: %w", err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the stored snapshot back. An empty database
// yields an empty snapshot, not an error.
func (db *DB) LoadSnapshot() (pipeline.Snapshot, error) {
	snap := pipeline.Snapshot{
		StageOrder: make(map[model.Stage][]string, len(model.AllStages)),
	}

	rows, err := db.Query(`
		SELECT id, name, company, email, phone, value, potential, source, stage, created_at, last_contact_at
		FROM clients ORDER BY created_at, id`)
	if err != nil {
		return snap, fmt.Errorf("failed to load clients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c model.Client
		var potential, stage, createdAt, lastContactAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Value,
			&potential, &c.Source, &stage, &createdAt, &lastContactAt); err != nil {
			return snap, fmt.Errorf("failed to scan client: %w", err)
		}
		c.Potential = model.Potential(potential)
		c.Status = model.Stage(stage)
		c.CreatedAt = parseTime(createdAt)
		c.LastContactAt = parseTime(lastContactAt)
		snap.Clients = append(snap.Clients, c)
	}
	if err := rows.Err(); err != nil {
		return snap, err
	}

	orderRows, err := db.Query(`SELECT id, stage FROM clients ORDER BY stage, stage_order`)
	if err != nil {
		return snap, fmt.Errorf("failed to load stage order: %w", err)
	}
	defer orderRows.Close()
	for orderRows.Next() {
		var id, stage string
		if err := orderRows.Scan(&id, &stage); err != nil {
			return snap, err
		}
		st := model.Stage(stage)
		snap.StageOrder[st] = append(snap.StageOrder[st], id)
	}
	if err := orderRows.Err(); err != nil {
		return snap, err
	}

	if err := db.loadNotes(&snap); err != nil {
		return snap, err
	}
	if err := db.loadTasks(&snap); err != nil {
		return snap, err
	}
	if err := db.loadComms(&snap); err != nil {
		return snap, err
	}
	return snap, nil
}

func (db *DB) loadNotes(snap *pipeline.Snapshot) error {
	rows, err := db.Query(`
		SELECT id, client_id, content, type, priority, author, created_at, updated_at
		FROM notes ORDER BY created_at, id`)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var n model.Note
		var typ, priority, createdAt, updatedAt string
		if err := rows.Scan(&n.ID, &n.ClientID, &n.Content, &typ, &priority, &n.Author, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("failed to scan note: %w", err)
		}
		n.Type = model.NoteType(typ)
		n.Priority = model.Priority(priority)
		n.CreatedAt = parseTime(createdAt)
		n.UpdatedAt = parseTime(updatedAt)
		snap.Notes = append(snap.Notes, n)
	}
	return rows.Err()
}

func (db *DB) loadTasks(snap *pipeline.Snapshot) error {
	rows, err := db.Query(`
		SELECT id, client_id, title, description, type, priority, status, due_date, completed_at, reminder_at, reminder_enabled, assignee, created_at, updated_at
		FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t model.Task
		var typ, priority, status, dueDate, createdAt, updatedAt string
		var completedAt, reminderAt sql.NullString
		var reminderEnabled bool
		if err := rows.Scan(&t.ID, &t.ClientID, &t.Title, &t.Description, &typ, &priority, &status,
			&dueDate, &completedAt, &reminderAt, &reminderEnabled, &t.Assignee, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("failed to scan task: %w", err)
		}
		t.Type = model.TaskType(typ)
		t.Priority = model.Priority(priority)
		t.Status = model.TaskStatus(status)
		t.DueDate = parseTime(dueDate)
		t.CreatedAt = parseTime(createdAt)
		t.UpdatedAt = parseTime(updatedAt)
		if completedAt.Valid {
			at := parseTime(completedAt.String)
			t.CompletedAt = &at
		}
		if reminderAt.Valid {
			t.Reminder = &model.Reminder{At: parseTime(reminderAt.String), Enabled: reminderEnabled}
		}
		snap.Tasks = append(snap.Tasks, t)
	}
	return rows.Err()
}

func (db *DB) loadComms(snap *pipeline.Snapshot) error {
	rows, err := db.Query(`
		SELECT id, client_id, type, direction, subject, content, duration_mins, participants, attachments, status, priority, outcome, author, created_at, updated_at
		FROM communications ORDER BY created_at, id`)
	if err != nil {
		return fmt.Errorf("failed to load communications: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cm model.Communication
		var typ, direction, status, priority, outcome, createdAt, updatedAt string
		var participants, attachments sql.NullString
		if err := rows.Scan(&cm.ID, &cm.ClientID, &typ, &direction, &cm.Subject, &cm.Content,
			&cm.DurationMins, &participants, &attachments, &status, &priority, &outcome,
			&cm.Author, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("failed to scan communication: %w", err)
		}
		cm.Type = model.CommType(typ)
		cm.Direction = model.Direction(direction)
		cm.Status = model.CommStatus(status)
		cm.Priority = model.Priority(priority)
		cm.Outcome = model.Outcome(outcome)
		cm.CreatedAt = parseTime(createdAt)
		cm.UpdatedAt = parseTime(updatedAt)
		if participants.Valid && participants.String != "" {
			json.Unmarshal([]byte(participants.String), &cm.Participants)
		}
		if attachments.Valid && attachments.String != "" {
			json.Unmarshal([]byte(attachments.String), &cm.Attachments)
		}
		snap.Comms = append(snap.Comms, cm)
	}
	return rows.Err()
}

func fmtTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
