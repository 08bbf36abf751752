package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sahilchouksey/todo-manager/database"
	"github.com/sahilchouksey/todo-manager/model"
	"gorm.io/gorm"
)

func TestNormalizeFilter(t *testing.T) {
	cases := map[string]string{
		"all":        FilterAll,
		"completed":  FilterCompleted,
		"incomplete": FilterIncomplete,
		"":           FilterAll,
		"bogus":      FilterAll,
		"COMPLETED":  FilterAll,
	}

	for in, want := range cases {
		if got := NormalizeFilter(in); got != want {
			t.Errorf("NormalizeFilter(%q) = %q, want %q", in, got, want)
		}
	}
}

// The tests below exercise the owner-scoping contract against a real
// PostgreSQL instance. They require:
// 1. RUN_INTEGRATION_TESTS=true
// 2. The DB_* environment variables pointing at a running database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	store, err := database.StartGORM()
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { store.Close() })
	return store.GetDB()
}

func createTestUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()

	user := model.User{
		Username:     "it_" + uuid.New().String()[:8],
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		db.Where("user_id = ?", user.ID).Delete(&model.Todo{})
		db.Unscoped().Delete(&model.User{}, user.ID)
	})
	return &user
}

func testFields(title string, completed bool) TodoFields {
	return TodoFields{
		Title:     title,
		DueDate:   time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		Priority:  model.PriorityHigh,
		Completed: completed,
	}
}

func TestOwnerIsolation(t *testing.T) {
	db := setupTestDB(t)
	service := NewTodoService(db)
	ctx := context.Background()

	user1 := createTestUser(t, db)
	user2 := createTestUser(t, db)

	created, err := service.Create(ctx, user1.ID, testFields("Study", false))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// user1 sees the record
	todos, err := service.List(ctx, user1.ID, FilterAll)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 1 || todos[0].Title != "Study" {
		t.Errorf("expected user1 to see [Study], got %v", todos)
	}

	// user2 does not, through any operation
	todos, err = service.List(ctx, user2.ID, FilterAll)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("expected user2 to see nothing, got %v", todos)
	}

	if _, err := service.Get(ctx, created.ID, user2.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound for cross-user get, got %v", err)
	}
	if _, err := service.Toggle(ctx, created.ID, user2.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound for cross-user toggle, got %v", err)
	}
	if err := service.Delete(ctx, created.ID, user2.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound for cross-user delete, got %v", err)
	}
}

func TestToggleSelfInverse(t *testing.T) {
	db := setupTestDB(t)
	service := NewTodoService(db)
	ctx := context.Background()

	user := createTestUser(t, db)

	created, err := service.Create(ctx, user.ID, testFields("Toggle me", false))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	toggled, err := service.Toggle(ctx, created.ID, user.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !toggled.Completed {
		t.Error("expected completed=true after first toggle")
	}

	toggled, err = service.Toggle(ctx, created.ID, user.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.Completed {
		t.Error("expected completed=false after second toggle")
	}
}

func TestDeleteIsIdempotentSafe(t *testing.T) {
	db := setupTestDB(t)
	service := NewTodoService(db)
	ctx := context.Background()

	user := createTestUser(t, db)

	created, err := service.Create(ctx, user.ID, testFields("Delete me", false))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.Delete(ctx, created.ID, user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := service.Get(ctx, created.ID, user.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected deleted record to be gone, got %v", err)
	}

	todos, err := service.List(ctx, user.ID, FilterAll)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("expected empty listing after delete, got %v", todos)
	}

	// Second delete reports not found instead of failing hard
	if err := service.Delete(ctx, created.ID, user.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound on repeated delete, got %v", err)
	}
}

func TestFiltersAreExact(t *testing.T) {
	db := setupTestDB(t)
	service := NewTodoService(db)
	ctx := context.Background()

	user := createTestUser(t, db)

	for _, tc := range []struct {
		title     string
		completed bool
	}{
		{"open one", false},
		{"open two", false},
		{"done one", true},
	} {
		if _, err := service.Create(ctx, user.ID, testFields(tc.title, tc.completed)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	incomplete, err := service.List(ctx, user.ID, FilterIncomplete)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(incomplete) != 2 {
		t.Errorf("expected 2 incomplete todos, got %d", len(incomplete))
	}
	for _, todo := range incomplete {
		if todo.Completed {
			t.Errorf("incomplete filter returned completed todo %q", todo.Title)
		}
	}

	completed, err := service.List(ctx, user.ID, FilterCompleted)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(completed) != 1 || !completed[0].Completed {
		t.Errorf("expected exactly the completed todo, got %v", completed)
	}

	// Unrecognized filter falls back to the full owned set
	all, err := service.List(ctx, user.ID, "whatever")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 todos for an unrecognized filter, got %d", len(all))
	}
}

func TestUpdateKeepsOwner(t *testing.T) {
	db := setupTestDB(t)
	service := NewTodoService(db)
	ctx := context.Background()

	user1 := createTestUser(t, db)
	user2 := createTestUser(t, db)

	created, err := service.Create(ctx, user1.ID, testFields("Mine", false))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := service.Update(ctx, created.ID, user1.ID, TodoFields{
		Title:     "Still mine",
		DueDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Priority:  model.PriorityLow,
		Completed: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.UserID != user1.ID {
		t.Errorf("owner changed on update: got %d, want %d", updated.UserID, user1.ID)
	}
	if updated.ID != created.ID {
		t.Errorf("id changed on update: got %d, want %d", updated.ID, created.ID)
	}
	if updated.Title != "Still mine" || !updated.Completed {
		t.Errorf("update did not apply fields: %+v", updated)
	}

	// The other user cannot update it either
	if _, err := service.Update(ctx, created.ID, user2.ID, testFields("Hijack", false)); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound for cross-user update, got %v", err)
	}
}

func TestListInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	service := NewTodoService(db)
	ctx := context.Background()

	user := createTestUser(t, db)

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := service.Create(ctx, user.ID, testFields(title, false)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	todos, err := service.List(ctx, user.ID, FilterAll)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != len(titles) {
		t.Fatalf("expected %d todos, got %d", len(titles), len(todos))
	}
	for i, title := range titles {
		if todos[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, todos[i].Title, title)
		}
	}
}
