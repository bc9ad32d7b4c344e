// Package taskstore owns the task collection: CRUD, filtering,
// sorting, manual reordering and recurrence expansion.
package taskstore

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyplanner/internal/core/datemath"
	"studyplanner/internal/core/model"
)

// DefaultCategory is used when a task is added or updated with an
// empty category.
const DefaultCategory = "General"

// Config contains runtime options for the Store. Now and NewID exist
// for tests; zero values use the clock and random UUIDs.
type Config struct {
	Now   func() time.Time
	NewID func() string
}

// Store is the owning collection of tasks. All mutations go through
// its methods; query results are fresh copies.
type Store struct {
	mu    sync.Mutex
	tasks []model.Task
	now   func() time.Time
	newID func() string
}

// Fields carries the caller-editable part of a task for Add and
// Update.
type Fields struct {
	Name       string
	Category   string
	DueDate    string
	Priority   model.Priority
	Recurrence model.Recurrence
}

// SortKey selects the ordering of query results.
type SortKey string

const (
	SortNone     SortKey = ""
	SortDueDate  SortKey = "date"
	SortPriority SortKey = "priority"
	SortName     SortKey = "name"
)

// Filter narrows and orders a query. Empty fields match everything.
type Filter struct {
	Category string
	Search   string
	SortBy   SortKey
}

// New creates an empty store.
func New(config Config) *Store {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.NewID == nil {
		config.NewID = uuid.NewString
	}
	return &Store{now: config.Now, newID: config.NewID}
}

// Add validates the fields and appends a new task. Name and due date
// are required; the category defaults to DefaultCategory.
func (store *Store) Add(fields Fields) (model.Task, error) {
	task, err := store.buildTask(fields)
	if err != nil {
		return model.Task{}, err
	}

	store.mu.Lock()
	store.tasks = append(store.tasks, task)
	store.mu.Unlock()
	return task, nil
}

// Update replaces the editable fields of an existing task.
func (store *Store) Update(id string, fields Fields) (model.Task, error) {
	validated, err := store.buildTask(fields)
	if err != nil {
		return model.Task{}, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	index := store.indexLocked(id)
	if index < 0 {
		return model.Task{}, fmt.Errorf("update task %s: %w", id, model.ErrNotFound)
	}
	task := &store.tasks[index]
	task.Name = validated.Name
	task.Category = validated.Category
	task.DueDate = validated.DueDate
	task.Priority = validated.Priority
	task.Recurrence = validated.Recurrence
	return *task, nil
}

// Remove deletes a task. Confirmation is a UI concern; removal here
// is unconditional.
func (store *Store) Remove(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	index := store.indexLocked(id)
	if index < 0 {
		return fmt.Errorf("remove task %s: %w", id, model.ErrNotFound)
	}
	store.tasks = append(store.tasks[:index], store.tasks[index+1:]...)
	return nil
}

// SetCompleted marks a task done or not done. Completing a recurring
// task also appends its successor occurrence with an advanced due
// date; the original keeps its own due date and stays completed.
// Un-completing never retracts a previously spawned successor.
func (store *Store) SetCompleted(id string, completed bool) (model.Task, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	index := store.indexLocked(id)
	if index < 0 {
		return model.Task{}, fmt.Errorf("complete task %s: %w", id, model.ErrNotFound)
	}

	task := &store.tasks[index]
	wasCompleted := task.Completed
	task.Completed = completed

	if completed && !wasCompleted && task.Recurrence != model.RecurrenceNone {
		successor, err := store.successorLocked(*task)
		if err != nil {
			return *task, err
		}
		store.tasks = append(store.tasks, successor)
		return store.tasks[index], nil
	}
	return *task, nil
}

// Reorder moves a task to immediately precede another. Unknown ids
// make this a silent no-op; callers treat reordering as non-fatal.
func (store *Store) Reorder(movedID, beforeID string) {
	if movedID == beforeID {
		return
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	from := store.indexLocked(movedID)
	if from < 0 {
		return
	}
	moved := store.tasks[from]
	store.tasks = append(store.tasks[:from], store.tasks[from+1:]...)

	to := store.indexLocked(beforeID)
	if to < 0 {
		// target vanished between lookups; restore original position
		store.tasks = append(store.tasks[:from], append([]model.Task{moved}, store.tasks[from:]...)...)
		return
	}
	store.tasks = append(store.tasks[:to], append([]model.Task{moved}, store.tasks[to:]...)...)
}

// Query returns a filtered, sorted copy of the tasks. The stored
// order is never mutated.
func (store *Store) Query(filter Filter) []model.Task {
	store.mu.Lock()
	matched := make([]model.Task, 0, len(store.tasks))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, task := range store.tasks {
		if filter.Category != "" && task.Category != filter.Category {
			continue
		}
		if search != "" && !matchesSearch(task, search) {
			continue
		}
		matched = append(matched, task)
	}
	store.mu.Unlock()

	switch filter.SortBy {
	case SortDueDate:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].DueDate < matched[j].DueDate
		})
	case SortPriority:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Priority.Rank() < matched[j].Priority.Rank()
		})
	case SortName:
		sort.SliceStable(matched, func(i, j int) bool {
			return strings.ToLower(matched[i].Name) < strings.ToLower(matched[j].Name)
		})
	}
	return matched
}

// Get returns a task by id.
func (store *Store) Get(id string) (model.Task, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	index := store.indexLocked(id)
	if index < 0 {
		return model.Task{}, fmt.Errorf("get task %s: %w", id, model.ErrNotFound)
	}
	return store.tasks[index], nil
}

// CreditStudyMinutes adds attributed pomodoro minutes to a task.
func (store *Store) CreditStudyMinutes(id string, minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("credit %d minutes: %w", minutes, model.ErrInvalidAmount)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	index := store.indexLocked(id)
	if index < 0 {
		return fmt.Errorf("credit task %s: %w", id, model.ErrNotFound)
	}
	store.tasks[index].StudyMinutes += minutes
	return nil
}

// Tasks returns a copy of all tasks in stored order.
func (store *Store) Tasks() []model.Task {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]model.Task(nil), store.tasks...)
}

// Replace swaps the whole collection, used by import.
func (store *Store) Replace(tasks []model.Task) {
	store.mu.Lock()
	store.tasks = append([]model.Task(nil), tasks...)
	store.mu.Unlock()
}

// Clear removes every task.
func (store *Store) Clear() {
	store.Replace(nil)
}

// Categories returns the sorted distinct categories in use.
func (store *Store) Categories() []string {
	store.mu.Lock()
	seen := make(map[string]struct{}, len(store.tasks))
	for _, task := range store.tasks {
		seen[task.Category] = struct{}{}
	}
	store.mu.Unlock()

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// DueOn returns the tasks due on the given date, sorted by priority
// then name, for the week view and due notifications.
func (store *Store) DueOn(date string) []model.Task {
	store.mu.Lock()
	due := make([]model.Task, 0, 4)
	for _, task := range store.tasks {
		if task.DueDate == date {
			due = append(due, task)
		}
	}
	store.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].Priority.Rank() != due[j].Priority.Rank() {
			return due[i].Priority.Rank() < due[j].Priority.Rank()
		}
		return strings.ToLower(due[i].Name) < strings.ToLower(due[j].Name)
	})
	return due
}

func (store *Store) buildTask(fields Fields) (model.Task, error) {
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return model.Task{}, fmt.Errorf("task name required: %w", model.ErrValidation)
	}
	if strings.TrimSpace(fields.DueDate) == "" {
		return model.Task{}, fmt.Errorf("task due date required: %w", model.ErrValidation)
	}
	dueDate, err := datemath.ParseISO(fields.DueDate)
	if err != nil {
		return model.Task{}, err
	}

	category := strings.TrimSpace(fields.Category)
	if category == "" {
		category = DefaultCategory
	}
	priority := fields.Priority
	if !priority.Valid() {
		priority = model.PriorityLow
	}
	recurrence := fields.Recurrence
	if !recurrence.Valid() {
		recurrence = model.RecurrenceNone
	}

	return model.Task{
		ID:         store.newID(),
		Name:       name,
		Category:   category,
		DueDate:    datemath.ISOFormat(dueDate),
		Priority:   priority,
		Recurrence: recurrence,
		CreatedAt:  store.now(),
	}, nil
}

func (store *Store) successorLocked(task model.Task) (model.Task, error) {
	dueDate, err := datemath.ParseISO(task.DueDate)
	if err != nil {
		return model.Task{}, err
	}
	next, err := datemath.NextOccurrence(dueDate, task.Recurrence)
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{
		ID:         store.newID(),
		Name:       task.Name,
		Category:   task.Category,
		DueDate:    datemath.ISOFormat(next),
		Priority:   task.Priority,
		Recurrence: task.Recurrence,
		CreatedAt:  store.now(),
	}, nil
}

func (store *Store) indexLocked(id string) int {
	for index, task := range store.tasks {
		if task.ID == id {
			return index
		}
	}
	return -1
}

func matchesSearch(task model.Task, search string) bool {
	return strings.Contains(strings.ToLower(task.Name), search) ||
		strings.Contains(strings.ToLower(task.Category), search)
}
