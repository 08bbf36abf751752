package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todo-manager/model"
	"github.com/sahilchouksey/todo-manager/utils/auth"
	"gorm.io/gorm"
)

// AuthMiddleware authenticates requests via the session cookie
type AuthMiddleware struct {
	sessions   *auth.SessionManager
	revocation *auth.RevocationService
	db         *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(sessions *auth.SessionManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		revocation: auth.NewRevocationService(db),
		db:         db,
	}
}

// Required is middleware that requires a valid session. Unauthenticated
// clients are redirected to the login page rather than answered with 401,
// since the surface is a browser-driven app.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(auth.SessionCookieName)
		if tokenString == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}

		claims, err := m.sessions.Validate(tokenString)
		if err != nil {
			clearSessionCookie(c)
			return c.Redirect("/login", fiber.StatusFound)
		}

		// Logged-out sessions stay invalid until the token would expire
		isRevoked, err := m.revocation.IsSessionRevoked(c.Context(), claims.ID)
		if err != nil || isRevoked {
			clearSessionCookie(c)
			return c.Redirect("/login", fiber.StatusFound)
		}

		var user model.User
		if err := m.db.First(&user, claims.UserID).Error; err != nil {
			clearSessionCookie(c)
			return c.Redirect("/login", fiber.StatusFound)
		}

		// A bumped token version invalidates every outstanding session
		if user.TokenVersion != claims.TokenVersion {
			clearSessionCookie(c)
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		c.Locals("user", &user)
		c.Locals("session_jti", claims.ID)
		c.Locals("session_claims", claims)

		return c.Next()
	}
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client
func ClearSessionCookie(c *fiber.Ctx) {
	clearSessionCookie(c)
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	userID := c.Locals("user_id")
	if userID == nil {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUser extracts full user object from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}

// GetSessionJTI extracts the session JTI from context
func GetSessionJTI(c *fiber.Ctx) (string, bool) {
	jti := c.Locals("session_jti")
	if jti == nil {
		return "", false
	}
	j, ok := jti.(string)
	return j, ok
}

// GetSessionClaims extracts the full session claims from context
func GetSessionClaims(c *fiber.Ctx) (*auth.SessionClaims, bool) {
	claims := c.Locals("session_claims")
	if claims == nil {
		return nil, false
	}
	claimsData, ok := claims.(*auth.SessionClaims)
	return claimsData, ok
}
