package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todo-manager/model"
	authutil "github.com/sahilchouksey/todo-manager/utils/auth"
	"github.com/sahilchouksey/todo-manager/utils/middleware"
	"github.com/sahilchouksey/todo-manager/utils/response"
)

// LoginForm represents a login form submission
type LoginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"-"`
}

// LoginPage serves the blank login form payload
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return response.Success(c, fiber.Map{
		"values":     LoginForm{},
		"csrf_token": middleware.CSRFToken(c),
	})
}

// Login verifies credentials and establishes a session cookie
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form LoginForm
	if err := c.BodyParser(&form); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if form.Username == "" || form.Password == "" {
		return response.FormInvalid(c, form, map[string]string{
			"username": "Username and password are required",
		})
	}

	ip := c.IP()

	// Find user by username
	var user model.User
	if err := h.db.Where("username = ?", form.Username).First(&user).Error; err != nil {
		// Record failed attempt even if user not found
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		return response.Unauthorized(c, "Invalid username or password")
	}

	// Verify password
	if err := authutil.VerifyPassword(user.PasswordHash, form.Password); err != nil {
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		return response.Unauthorized(c, "Invalid username or password")
	}

	// Clear failed attempts on successful login
	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	token, _, err := h.sessions.Issue(user.ID, user.Username, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to establish session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     authutil.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.sessions.Expiry()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return response.Redirect(c, "/todos")
}
