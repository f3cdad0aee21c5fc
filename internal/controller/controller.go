// Package controller holds the board's view state and runs every
// mutation against the store: load, create, edit, move, delete. All
// reads go through an immutable Snapshot; all writes recompute the
// task's priority score before persisting and reload the full board
// afterwards, so observers always see exactly what is stored.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdeck/taskdeck/internal/priority"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
)

// ErrBusy is returned when a mutating operation arrives while another
// one is still running. Callers should drop the request; the first
// operation's reload will refresh the board.
var ErrBusy = errors.New("an operation is already in progress")

// Snapshot is an immutable view of the board. Callers must not modify
// the task slices.
type Snapshot struct {
	Todo       []task.Task
	InProgress []task.Task
	Done       []task.Task
	All        []task.Task

	// Busy is true while a mutating operation runs.
	Busy bool

	// Message is the last status line ("Loaded 12 tasks.", "Task added.").
	Message string

	// Draft is non-nil while the edit form is open.
	Draft *task.Draft
}

// Task returns the snapshot's copy of a task by ID.
func (s Snapshot) Task(id int64) (task.Task, bool) {
	for _, t := range s.All {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// Controller owns the board state. Mutating operations are serialized:
// a second mutation arriving while one runs is rejected with ErrBusy
// rather than queued, so a double-submit cannot write twice.
type Controller struct {
	repo   store.TaskRepository
	engine *priority.Engine
	log    zerolog.Logger
	now    func() time.Time

	mu        sync.Mutex
	snap      Snapshot
	lastSaved int64
	onChange  func(Snapshot)
}

// New creates a controller over the given repository and priority engine.
func New(repo store.TaskRepository, engine *priority.Engine, log zerolog.Logger) *Controller {
	return &Controller{
		repo:   repo,
		engine: engine,
		log:    log.With().Str("component", "controller").Logger(),
		now:    time.Now,
	}
}

// SetNow overrides the clock used for priority calculation (for testing).
func (c *Controller) SetNow(fn func() time.Time) {
	c.now = fn
}

// OnChange registers a callback invoked after every snapshot change,
// outside the controller's lock. Only one callback is supported.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Snapshot returns the current board state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// LastSavedID returns the ID of the task most recently persisted by
// Save, or zero when nothing has been saved yet. Unlike scanning the
// snapshot for the highest ID, it cannot pick up a row inserted by a
// concurrent process.
func (c *Controller) LastSavedID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSaved
}

// Load reads every task from the store and rebuilds the board columns.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.begin("Loading tasks..."); err != nil {
		return err
	}

	tasks, err := c.repo.GetAll(ctx)
	if err != nil {
		c.finish(func(s *Snapshot) { s.Message = "Error: " + err.Error() })
		return fmt.Errorf("loading tasks: %w", err)
	}

	c.finish(func(s *Snapshot) {
		setTasks(s, tasks)
		s.Message = fmt.Sprintf("Loaded %d tasks.", len(tasks))
	})
	c.log.Debug().Int("count", len(tasks)).Msg("board loaded")
	return nil
}

// StartCreate opens the edit form with a fresh draft anchored to the
// given column.
func (c *Controller) StartCreate(anchor task.Status) {
	d := task.NewDraft(anchor)
	c.apply(func(s *Snapshot) {
		s.Draft = &d
		s.Message = "Editing new task..."
	})
}

// StartEdit opens the edit form pre-populated from a task.
func (c *Controller) StartEdit(t task.Task) {
	d := task.DraftOf(&t)
	c.apply(func(s *Snapshot) {
		s.Draft = &d
		s.Message = "Editing: " + t.Title
	})
}

// CancelEdit discards the open draft. A no-op when no form is open.
func (c *Controller) CancelEdit() {
	c.apply(func(s *Snapshot) {
		if s.Draft == nil {
			return
		}
		s.Draft = nil
		s.Message = "Edit cancelled."
	})
}

// UpdateDraft mutates the open draft through fn. A no-op when no form
// is open.
func (c *Controller) UpdateDraft(fn func(*task.Draft)) {
	c.apply(func(s *Snapshot) {
		if s.Draft == nil {
			return
		}
		d := *s.Draft
		fn(&d)
		s.Draft = &d
	})
}

// Save validates the open draft and persists it: an insert when the
// draft has no ID, an update otherwise. The saved task's status is the
// draft's anchor column and its priority score is recomputed from the
// draft's attributes. On success the form closes and the board reloads.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.snap.Draft == nil {
		c.mu.Unlock()
		return nil
	}
	if c.snap.Busy {
		c.mu.Unlock()
		return ErrBusy
	}
	d := *c.snap.Draft
	c.snap.Busy = true
	c.snap.Message = "Saving..."
	c.mu.Unlock()
	c.notify()

	err := c.save(ctx, d)
	if err != nil {
		c.finish(func(s *Snapshot) { s.Message = "Error: " + err.Error() })
		return err
	}

	msg := "Task added."
	if d.ID != nil {
		msg = "Updated: " + d.Title
	}
	return c.reload(ctx, msg)
}

func (c *Controller) save(ctx context.Context, d task.Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if d.ID == nil {
		t := d.Task()
		t.PriorityScore = c.engine.Calculate(&t, c.now())
		if err := c.repo.Add(ctx, &t); err != nil {
			return fmt.Errorf("adding task: %w", err)
		}
		c.setLastSaved(t.ID)
		c.log.Info().Int64("id", t.ID).Str("title", t.Title).Msg("task created")
		return nil
	}

	t, err := c.repo.GetByID(ctx, *d.ID)
	if err != nil {
		return fmt.Errorf("loading task %d: %w", *d.ID, err)
	}
	d.Apply(&t)
	t.PriorityScore = c.engine.Calculate(&t, c.now())
	if err := c.repo.Update(ctx, &t); err != nil {
		return fmt.Errorf("updating task %d: %w", t.ID, err)
	}
	c.setLastSaved(t.ID)
	c.log.Info().Int64("id", t.ID).Msg("task updated")
	return nil
}

func (c *Controller) setLastSaved(id int64) {
	c.mu.Lock()
	c.lastSaved = id
	c.mu.Unlock()
}

// Advance moves a task one column to the right. Returns false without
// error when the task is already Done.
func (c *Controller) Advance(ctx context.Context, id int64) (bool, error) {
	return c.move(ctx, id, func(s task.Status) (task.Status, bool) { return s.Next() })
}

// Retreat moves a task one column to the left. Returns false without
// error when the task is already in Todo.
func (c *Controller) Retreat(ctx context.Context, id int64) (bool, error) {
	return c.move(ctx, id, func(s task.Status) (task.Status, bool) { return s.Prev() })
}

// MoveTo moves a task straight to the given column. Returns false
// without error when the task is already there.
func (c *Controller) MoveTo(ctx context.Context, id int64, to task.Status) (bool, error) {
	return c.move(ctx, id, func(s task.Status) (task.Status, bool) {
		return to, s != to
	})
}

func (c *Controller) move(ctx context.Context, id int64, step func(task.Status) (task.Status, bool)) (bool, error) {
	if err := c.begin("Moving..."); err != nil {
		return false, err
	}

	t, err := c.repo.GetByID(ctx, id)
	if err != nil {
		c.finish(func(s *Snapshot) { s.Message = "Error: " + err.Error() })
		return false, fmt.Errorf("loading task %d: %w", id, err)
	}

	to, ok := step(t.Status)
	if !ok {
		c.finish(nil)
		return false, nil
	}

	t.Status = to
	t.PriorityScore = c.engine.Calculate(&t, c.now())
	if err := c.repo.Update(ctx, &t); err != nil {
		c.finish(func(s *Snapshot) { s.Message = "Error: " + err.Error() })
		return false, fmt.Errorf("moving task %d: %w", id, err)
	}

	c.log.Info().Int64("id", id).Str("to", to.String()).Msg("task moved")
	if err := c.reload(ctx, "Moved to "+to.Title()); err != nil {
		return true, err
	}
	return true, nil
}

// Delete removes a task permanently and reloads the board.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if err := c.begin("Deleting..."); err != nil {
		return err
	}

	title := fmt.Sprintf("#%d", id)
	if t, err := c.repo.GetByID(ctx, id); err == nil {
		title = t.Title
	}

	if err := c.repo.Delete(ctx, id); err != nil {
		c.finish(func(s *Snapshot) { s.Message = "Error: " + err.Error() })
		return fmt.Errorf("deleting task %d: %w", id, err)
	}

	c.log.Info().Int64("id", id).Msg("task deleted")
	return c.reload(ctx, "Deleted: "+title)
}

// begin marks the controller busy, rejecting with ErrBusy when a
// mutation is already running.
func (c *Controller) begin(msg string) error {
	c.mu.Lock()
	if c.snap.Busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.snap.Busy = true
	c.snap.Message = msg
	c.mu.Unlock()
	c.notify()
	return nil
}

// finish clears the busy flag and applies fn to the snapshot.
func (c *Controller) finish(fn func(*Snapshot)) {
	c.mu.Lock()
	c.snap.Busy = false
	if fn != nil {
		fn(&c.snap)
	}
	c.mu.Unlock()
	c.notify()
}

// reload re-reads the store after a successful mutation, closing any
// open form and replacing the board wholesale.
func (c *Controller) reload(ctx context.Context, msg string) error {
	tasks, err := c.repo.GetAll(ctx)
	if err != nil {
		c.finish(func(s *Snapshot) { s.Message = "Error: " + err.Error() })
		return fmt.Errorf("reloading tasks: %w", err)
	}
	c.finish(func(s *Snapshot) {
		setTasks(s, tasks)
		s.Draft = nil
		s.Message = msg
	})
	return nil
}

// apply runs a synchronous snapshot edit that needs no store access.
func (c *Controller) apply(fn func(*Snapshot)) {
	c.mu.Lock()
	fn(&c.snap)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	snap := c.snap
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

func setTasks(s *Snapshot, tasks []task.Task) {
	s.All = tasks
	s.Todo = s.Todo[:0:0]
	s.InProgress = s.InProgress[:0:0]
	s.Done = s.Done[:0:0]
	for _, t := range tasks {
		switch t.Status {
		case task.StatusTodo:
			s.Todo = append(s.Todo, t)
		case task.StatusInProgress:
			s.InProgress = append(s.InProgress, t)
		case task.StatusDone:
			s.Done = append(s.Done, t)
		}
	}
}
