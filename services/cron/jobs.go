package cron

import (
	"context"
	"log"
	"time"

	"github.com/sahilchouksey/todo-manager/utils/auth"
)

// CleanupRevokedSessions removes revocation rows for session tokens that
// have expired. Expired tokens fail validation on their own, so the rows
// only exist to block still-valid tokens after logout.
func (m *CronManager) CleanupRevokedSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	revocation := auth.NewRevocationService(m.db)
	removed, err := revocation.CleanupExpiredSessions(ctx)
	if err != nil {
		log.Printf("[CRON] cleanup_revoked_sessions failed: %v", err)
		return
	}

	if removed > 0 {
		log.Printf("[CRON] cleanup_revoked_sessions removed %d rows", removed)
	}
}
