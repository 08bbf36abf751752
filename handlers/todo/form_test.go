package todo

import (
	"strings"
	"testing"
	"time"

	"github.com/sahilchouksey/todo-manager/model"
	"github.com/sahilchouksey/todo-manager/utils/validation"
)

func TestTodoFormValid(t *testing.T) {
	v := validation.NewValidator()

	form := TodoForm{
		Title:       "Study",
		Description: "Finish the assignment",
		DueDate:     "2025-03-20",
		Priority:    "high",
	}

	fieldErrors := form.Validate(v)
	if len(fieldErrors) != 0 {
		t.Fatalf("expected no errors, got %v", fieldErrors)
	}

	fields := form.Fields()
	if fields.Title != "Study" {
		t.Errorf("expected title Study, got %q", fields.Title)
	}
	if fields.DueDate.Format(model.DateLayout) != "2025-03-20" {
		t.Errorf("expected due date 2025-03-20, got %v", fields.DueDate)
	}
	if fields.Completed {
		t.Error("completed should default to false when the checkbox is absent")
	}
}

func TestTodoFormMissingTitle(t *testing.T) {
	v := validation.NewValidator()

	form := TodoForm{
		DueDate:  "2025-03-20",
		Priority: "medium",
	}

	fieldErrors := form.Validate(v)
	if _, ok := fieldErrors["title"]; !ok {
		t.Errorf("expected a title error, got %v", fieldErrors)
	}
	if _, ok := fieldErrors["due_date"]; ok {
		t.Errorf("due_date is valid, should carry no error: %v", fieldErrors)
	}
}

func TestTodoFormTitleTooLong(t *testing.T) {
	v := validation.NewValidator()

	form := TodoForm{
		Title:    strings.Repeat("a", 101),
		DueDate:  "2025-03-20",
		Priority: "low",
	}

	fieldErrors := form.Validate(v)
	if _, ok := fieldErrors["title"]; !ok {
		t.Errorf("expected a title length error, got %v", fieldErrors)
	}

	// Exactly 100 characters is still fine
	form.Title = strings.Repeat("a", 100)
	if fieldErrors := form.Validate(v); len(fieldErrors) != 0 {
		t.Errorf("100-char title should be accepted, got %v", fieldErrors)
	}
}

func TestTodoFormInvalidDate(t *testing.T) {
	v := validation.NewValidator()

	form := TodoForm{
		Title:    "Invalid date",
		DueDate:  "invalid-date",
		Priority: "high",
	}

	fieldErrors := form.Validate(v)
	if _, ok := fieldErrors["due_date"]; !ok {
		t.Errorf("expected a due_date error, got %v", fieldErrors)
	}
	if _, ok := fieldErrors["title"]; ok {
		t.Errorf("title is valid, should carry no error: %v", fieldErrors)
	}
}

func TestTodoFormInvalidPriority(t *testing.T) {
	v := validation.NewValidator()

	form := TodoForm{
		Title:    "Study",
		DueDate:  "2025-03-20",
		Priority: "urgent",
	}

	fieldErrors := form.Validate(v)
	if _, ok := fieldErrors["priority"]; !ok {
		t.Errorf("expected a priority error, got %v", fieldErrors)
	}
}

func TestTodoFormCompletedCheckbox(t *testing.T) {
	cases := map[string]bool{
		"on":    true,
		"true":  true,
		"1":     true,
		"":      false,
		"off":   false,
		"false": false,
	}

	for raw, want := range cases {
		form := TodoForm{Completed: raw}
		if got := form.CompletedBool(); got != want {
			t.Errorf("CompletedBool(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestFormFromTodoPrefill(t *testing.T) {
	due, _ := time.Parse(model.DateLayout, "2025-03-25")
	record := model.Todo{
		ID:          7,
		Title:       "Read book",
		Description: "Chapter 4",
		DueDate:     due,
		Priority:    model.PriorityLow,
		Completed:   true,
	}

	form := FormFromTodo(&record)
	if form.Title != "Read book" {
		t.Errorf("expected title prefilled, got %q", form.Title)
	}
	if form.DueDate != "2025-03-25" {
		t.Errorf("expected due date prefilled, got %q", form.DueDate)
	}
	if form.CompletedBool() != true {
		t.Error("expected completed prefilled as checked")
	}

	v := validation.NewValidator()
	if fieldErrors := form.Validate(v); len(fieldErrors) != 0 {
		t.Errorf("a prefilled form must validate cleanly, got %v", fieldErrors)
	}
}
