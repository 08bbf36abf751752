package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todo-manager/model"
	authutil "github.com/sahilchouksey/todo-manager/utils/auth"
	"github.com/sahilchouksey/todo-manager/utils/middleware"
	"github.com/sahilchouksey/todo-manager/utils/response"
	"github.com/sahilchouksey/todo-manager/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	db                   *gorm.DB
	sessions             *authutil.SessionManager
	revocation           *authutil.RevocationService
	bruteForceProtection *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, sessions *authutil.SessionManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		sessions:             sessions,
		revocation:           authutil.NewRevocationService(db),
		bruteForceProtection: bruteForceProtection,
	}
}

// RegisterForm represents a registration form submission
type RegisterForm struct {
	Username        string `form:"username" json:"username"`
	Password        string `form:"password" json:"-"`
	ConfirmPassword string `form:"confirm_password" json:"-"`
}

// Validate checks the registration form and returns per-field errors
func (f *RegisterForm) Validate() map[string]string {
	fieldErrors := make(map[string]string)

	f.Username = validation.SanitizeString(f.Username)
	if f.Username == "" {
		fieldErrors["username"] = "Username is required"
	} else if ok, msg := validation.ValidateUsername(f.Username); !ok {
		fieldErrors["username"] = msg
	}

	if f.Password == "" {
		fieldErrors["password"] = "Password is required"
	} else if ok, msgs := validation.ValidatePassword(f.Password); !ok {
		fieldErrors["password"] = msgs[0]
	}

	if f.ConfirmPassword != f.Password {
		fieldErrors["confirm_password"] = "Passwords do not match"
	}

	return fieldErrors
}

// RegisterPage serves the blank registration form payload
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return response.Success(c, fiber.Map{
		"values":     RegisterForm{},
		"csrf_token": middleware.CSRFToken(c),
	})
}

// Register handles account creation and redirects to the login page
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
		return response.FormInvalid(c, form, fieldErrors)
	}

	// Check if username is taken
	var existingUser model.User
	if err := h.db.Where("username = ?", form.Username).First(&existingUser).Error; err == nil {
		return response.FormInvalid(c, form, map[string]string{
			"username": "Username is already taken",
		})
	} else if err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to check username")
	}

	hashedPassword, err := authutil.HashPassword(form.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	user := model.User{
		Username:     form.Username,
		PasswordHash: hashedPassword,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to create user")
	}

	return response.Redirect(c, "/login")
}
