package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todo-manager/database"
	"github.com/sahilchouksey/todo-manager/utils/response"
)

// HandleCheckHealth reports whether the service and its database are up
func HandleCheckHealth(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.InternalServerError(c, "Database is unreachable")
		}
		return response.Success(c, fiber.Map{"status": "ok"})
	}
}
