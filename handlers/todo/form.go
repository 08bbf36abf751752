package todo

import (
	"time"

	"github.com/sahilchouksey/todo-manager/model"
	"github.com/sahilchouksey/todo-manager/services"
	"github.com/sahilchouksey/todo-manager/utils/validation"
)

// TodoForm is the statically declared field list for creating and editing
// a todo. Parse (BodyParser), Validate and Fields are independent steps;
// the owner is never part of the form.
type TodoForm struct {
	Title       string `form:"title" json:"title" validate:"required,max=100"`
	Description string `form:"description" json:"description"`
	DueDate     string `form:"due_date" json:"due_date" validate:"required"`
	Priority    string `form:"priority" json:"priority" validate:"required,oneof=high medium low"`
	// Checkbox value; absent means false
	Completed string `form:"completed" json:"completed,omitempty"`
}

// FormFromTodo pre-fills a form from an existing record for the edit page
func FormFromTodo(t *model.Todo) TodoForm {
	form := TodoForm{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.Format(model.DateLayout),
		Priority:    t.Priority,
	}
	if t.Completed {
		form.Completed = "on"
	}
	return form
}

// Validate checks the form and returns one message per invalid field.
// An empty map means the form is valid.
func (f *TodoForm) Validate(v *validation.Validator) map[string]string {
	f.Title = validation.SanitizeString(f.Title)
	f.Description = validation.SanitizeString(f.Description)

	fieldErrors := make(map[string]string)
	if err := v.ValidateStruct(f); err != nil {
		fieldErrors = validation.FormatValidationErrors(err)
	}

	// Tag validation covers presence; a present due_date must also parse
	if _, hasErr := fieldErrors["due_date"]; !hasErr && f.DueDate != "" {
		if _, err := time.Parse(model.DateLayout, f.DueDate); err != nil {
			fieldErrors["due_date"] = "due_date must be a date in YYYY-MM-DD format"
		}
	}

	return fieldErrors
}

// CompletedBool interprets the checkbox value
func (f *TodoForm) CompletedBool() bool {
	switch f.Completed {
	case "on", "true", "1":
		return true
	default:
		return false
	}
}

// Fields converts a validated form into the mutable record fields
func (f *TodoForm) Fields() services.TodoFields {
	dueDate, _ := time.Parse(model.DateLayout, f.DueDate)
	return services.TodoFields{
		Title:       f.Title,
		Description: f.Description,
		DueDate:     dueDate,
		Priority:    f.Priority,
		Completed:   f.CompletedBool(),
	}
}
