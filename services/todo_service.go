package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahilchouksey/todo-manager/model"
	"gorm.io/gorm"
)

// ErrTodoNotFound is returned when a todo does not exist or belongs to a
// different user. The two cases are deliberately indistinguishable so that
// record IDs cannot be probed across accounts.
var ErrTodoNotFound = errors.New("todo not found")

// Filter values accepted by List. Anything else falls back to FilterAll.
const (
	FilterAll        = "all"
	FilterCompleted  = "completed"
	FilterIncomplete = "incomplete"
)

// NormalizeFilter maps an arbitrary filter query value to a supported one
func NormalizeFilter(filter string) string {
	switch filter {
	case FilterCompleted, FilterIncomplete:
		return filter
	default:
		return FilterAll
	}
}

// TodoFields carries the mutable fields of a todo. Owner and ID are never
// part of this struct; they come from the session and the route.
type TodoFields struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    string
	Completed   bool
}

// TodoService implements the owner-scoped record store. Every lookup and
// mutation is keyed by (id, ownerID) so users can only ever see their own rows.
type TodoService struct {
	db *gorm.DB
}

// NewTodoService creates a new todo service
func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

// Create persists a new todo for the given owner
func (s *TodoService) Create(ctx context.Context, ownerID uint, fields TodoFields) (*model.Todo, error) {
	todo := model.Todo{
		UserID:      ownerID,
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		Priority:    fields.Priority,
		Completed:   fields.Completed,
	}

	if err := s.db.WithContext(ctx).Create(&todo).Error; err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return &todo, nil
}

// Get loads a single todo scoped to its owner
func (s *TodoService) Get(ctx context.Context, id uint, ownerID uint) (*model.Todo, error) {
	var todo model.Todo
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&todo).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to load todo: %w", err)
	}

	return &todo, nil
}

// List returns the owner's todos in insertion order, optionally narrowed
// by completion state
func (s *TodoService) List(ctx context.Context, ownerID uint, filter string) ([]model.Todo, error) {
	query := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id asc")

	switch NormalizeFilter(filter) {
	case FilterCompleted:
		query = query.Where("completed = ?", true)
	case FilterIncomplete:
		query = query.Where("completed = ?", false)
	}

	var todos []model.Todo
	if err := query.Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	return todos, nil
}

// Update replaces the mutable fields of a todo. Owner and ID cannot change.
func (s *TodoService) Update(ctx context.Context, id uint, ownerID uint, fields TodoFields) (*model.Todo, error) {
	// Updates with a map so a false Completed is written too; GORM skips
	// zero values when updating from a struct
	result := s.db.WithContext(ctx).
		Model(&model.Todo{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"title":       fields.Title,
			"description": fields.Description,
			"due_date":    fields.DueDate,
			"priority":    fields.Priority,
			"completed":   fields.Completed,
		})

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTodoNotFound
	}

	return s.Get(ctx, id, ownerID)
}

// Toggle flips the completed flag. Two toggles restore the original state.
func (s *TodoService) Toggle(ctx context.Context, id uint, ownerID uint) (*model.Todo, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Todo{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("completed", gorm.Expr("NOT completed"))

	if result.Error != nil {
		return nil, fmt.Errorf("failed to toggle todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTodoNotFound
	}

	return s.Get(ctx, id, ownerID)
}

// Delete removes a todo. A repeated delete reports ErrTodoNotFound, not a
// server error.
func (s *TodoService) Delete(ctx context.Context, id uint, ownerID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Todo{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}
