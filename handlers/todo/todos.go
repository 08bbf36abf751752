package todo

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todo-manager/model"
	"github.com/sahilchouksey/todo-manager/services"
	"github.com/sahilchouksey/todo-manager/utils/middleware"
	"github.com/sahilchouksey/todo-manager/utils/response"
	"github.com/sahilchouksey/todo-manager/utils/validation"
)

// TodoHandler handles the todo CRUD endpoints. Every operation is scoped
// to the authenticated user; the owner of a record can never be set or
// changed through these handlers.
type TodoHandler struct {
	service   *services.TodoService
	validator *validation.Validator
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(service *services.TodoService) *TodoHandler {
	return &TodoHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// parseID reads the :id route parameter. Unparseable IDs are treated the
// same as unknown ones.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, services.ErrTodoNotFound
	}
	return uint(id), nil
}

// List handles GET /todos. The filter query parameter narrows by
// completion state; anything unrecognized means "all". Each item carries
// a derived overdue flag for past-due open todos.
func (h *TodoHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.RedirectToLogin(c)
	}

	filter := services.NormalizeFilter(c.Query("filter"))

	todos, err := h.service.List(c.Context(), userID, filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to load todos")
	}

	today := time.Now()
	items := make([]model.TodoResponse, 0, len(todos))
	for i := range todos {
		items = append(items, todos[i].ToResponse(today))
	}

	return response.Success(c, fiber.Map{
		"filter": filter,
		"todos":  items,
	})
}

// AddPage handles GET /todos/add with a blank form payload
func (h *TodoHandler) AddPage(c *fiber.Ctx) error {
	return response.Success(c, fiber.Map{
		"values":     TodoForm{},
		"csrf_token": middleware.CSRFToken(c),
	})
}

// Create handles POST /todos/add. The owner comes from the session, never
// from the submitted form.
func (h *TodoHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.RedirectToLogin(c)
	}

	var form TodoForm
	if err := c.BodyParser(&form); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := form.Validate(h.validator); len(fieldErrors) > 0 {
		return response.FormInvalid(c, form, fieldErrors)
	}

	if _, err := h.service.Create(c.Context(), userID, form.Fields()); err != nil {
		return response.InternalServerError(c, "Failed to create todo")
	}

	return response.Redirect(c, "/todos")
}

// EditPage handles GET /todos/:id/edit with the form pre-filled from the
// stored record
func (h *TodoHandler) EditPage(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.RedirectToLogin(c)
	}

	id, err := parseID(c)
	if err != nil {
		return response.NotFound(c, "Todo not found")
	}

	record, err := h.service.Get(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			return response.NotFound(c, "Todo not found")
		}
		return response.InternalServerError(c, "Failed to load todo")
	}

	return response.Success(c, fiber.Map{
		"values":     FormFromTodo(record),
		"csrf_token": middleware.CSRFToken(c),
	})
}

// Edit handles POST /todos/:id/edit as a full-record replacement. Owner
// and ID stay as they are.
func (h *TodoHandler) Edit(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.RedirectToLogin(c)
	}

	id, err := parseID(c)
	if err != nil {
		return response.NotFound(c, "Todo not found")
	}

	var form TodoForm
	if err := c.BodyParser(&form); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := form.Validate(h.validator); len(fieldErrors) > 0 {
		return response.FormInvalid(c, form, fieldErrors)
	}

	if _, err := h.service.Update(c.Context(), id, userID, form.Fields()); err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			return response.NotFound(c, "Todo not found")
		}
		return response.InternalServerError(c, "Failed to update todo")
	}

	return response.Redirect(c, "/todos")
}

// Toggle handles POST /todos/:id/toggle, flipping the completed flag
func (h *TodoHandler) Toggle(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.RedirectToLogin(c)
	}

	id, err := parseID(c)
	if err != nil {
		return response.NotFound(c, "Todo not found")
	}

	if _, err := h.service.Toggle(c.Context(), id, userID); err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			return response.NotFound(c, "Todo not found")
		}
		return response.InternalServerError(c, "Failed to toggle todo")
	}

	return response.Redirect(c, "/todos")
}

// ConfirmDeletePage handles GET /todos/:id/delete, showing the record
// about to be removed
func (h *TodoHandler) ConfirmDeletePage(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.RedirectToLogin(c)
	}

	id, err := parseID(c)
	if err != nil {
		return response.NotFound(c, "Todo not found")
	}

	record, err := h.service.Get(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			return response.NotFound(c, "Todo not found")
		}
		return response.InternalServerError(c, "Failed to load todo")
	}

	return response.Success(c, fiber.Map{
		"todo":       record.ToResponse(time.Now()),
		"csrf_token": middleware.CSRFToken(c),
	})
}

// Delete handles POST /todos/:id/delete/confirm, the explicit second step
// of the delete flow
func (h *TodoHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.RedirectToLogin(c)
	}

	id, err := parseID(c)
	if err != nil {
		return response.NotFound(c, "Todo not found")
	}

	if err := h.service.Delete(c.Context(), id, userID); err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			return response.NotFound(c, "Todo not found")
		}
		return response.InternalServerError(c, "Failed to delete todo")
	}

	return response.Redirect(c, "/todos")
}
