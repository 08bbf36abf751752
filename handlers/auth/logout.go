package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todo-manager/utils/middleware"
	"github.com/sahilchouksey/todo-manager/utils/response"
)

// Logout revokes the current session and clears the cookie
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.RedirectToLogin(c)
	}

	jti, hasJTI := middleware.GetSessionJTI(c)
	claims, hasClaims := middleware.GetSessionClaims(c)

	if hasJTI && hasClaims && claims.ExpiresAt != nil {
		// Block the still-valid token until it would expire on its own
		if err := h.revocation.RevokeSession(c.Context(), jti, user.ID, claims.ExpiresAt.Time, "logout"); err != nil {
			return response.InternalServerError(c, "Failed to end session")
		}
	} else if hasJTI {
		if err := h.revocation.RevokeSession(c.Context(), jti, user.ID, time.Now().Add(h.sessions.Expiry()), "logout"); err != nil {
			return response.InternalServerError(c, "Failed to end session")
		}
	}

	middleware.ClearSessionCookie(c)
	return response.RedirectToLogin(c)
}
