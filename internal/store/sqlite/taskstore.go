package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/date"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
)

// TaskStore implements store.TaskRepository using SQLite.
type TaskStore struct {
	db  *DB
	now func() time.Time // clock for timestamps; defaults to time.Now
}

var _ store.TaskRepository = (*TaskStore)(nil)

// NewTaskStore creates a new SQLite-backed task store.
func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db, now: time.Now}
}

// SetNow overrides the clock used for timestamps (for testing).
func (s *TaskStore) SetNow(fn func() time.Time) {
	s.now = fn
}

const taskColumns = `id, title, description, due_date, effort_hours,
	impact_score, urgency_score, priority_score, status, category_id,
	created_at, updated_at`

// GetAll returns every task ordered by descending priority score.
func (s *TaskStore) GetAll(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY priority_score DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetByID returns a single task or store.ErrNotFound.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (task.Task, error) {
	row := s.db.conn.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, store.ErrNotFound
	}
	if err != nil {
		return task.Task{}, fmt.Errorf("getting task %d: %w", id, err)
	}
	return t, nil
}

// Add persists a new task, assigning its ID and setting both timestamps.
func (s *TaskStore) Add(ctx context.Context, t *task.Task) error {
	if t.CategoryID == 0 {
		t.CategoryID = task.InboxCategoryID
	}
	now := s.now()

	res, err := s.db.conn.ExecContext(ctx, `
		INSERT INTO tasks (title, description, due_date, effort_hours,
			impact_score, urgency_score, priority_score, status, category_id,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, dueValue(t.DueDate), t.EffortHours,
		t.ImpactScore, t.UrgencyScore, t.PriorityScore, int(t.Status), t.CategoryID,
		now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted task id: %w", err)
	}

	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

// Update overwrites a stored task's mutable fields and refreshes UpdatedAt.
// Returns store.ErrNotFound when the ID has no stored row; it never
// creates one.
func (s *TaskStore) Update(ctx context.Context, t *task.Task) error {
	now := s.now()

	res, err := s.db.conn.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, due_date = ?,
			effort_hours = ?, impact_score = ?, urgency_score = ?,
			priority_score = ?, status = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, dueValue(t.DueDate), t.EffortHours,
		t.ImpactScore, t.UrgencyScore, t.PriorityScore, int(t.Status), t.CategoryID,
		now.UnixNano(), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %d: %w", t.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update of task %d: %w", t.ID, err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	t.UpdatedAt = now
	return nil
}

// Delete removes a task permanently. Deleting an absent ID is a no-op.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}

// Categories returns the seeded categories in sort order.
func (s *TaskStore) Categories(ctx context.Context) ([]task.Category, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT id, name, color, sort_order FROM categories ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cats []task.Category
	for rows.Next() {
		var c task.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (task.Task, error) {
	var (
		t         task.Task
		due       sql.NullString
		status    int
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &due, &t.EffortHours,
		&t.ImpactScore, &t.UrgencyScore, &t.PriorityScore, &status, &t.CategoryID,
		&createdAt, &updatedAt)
	if err != nil {
		return task.Task{}, err
	}

	t.Status = task.Status(status)
	t.CreatedAt = time.Unix(0, createdAt)
	t.UpdatedAt = time.Unix(0, updatedAt)

	if due.Valid {
		d, err := date.Parse(due.String)
		if err != nil {
			return task.Task{}, fmt.Errorf("task %d: %w", t.ID, err)
		}
		t.DueDate = &d
	}

	return t, nil
}

// dueValue converts an optional due date to its column representation.
func dueValue(d *date.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}
