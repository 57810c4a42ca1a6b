// Package session wraps the scs session manager with the few helpers
// the site needs: the authenticated user id and one-shot flash
// messages consumed by the next rendered page.
package session

import (
	"context"
	"time"

	"github.com/alexedwards/scs/v2"
)

const (
	userIDKey       = "userID"
	flashMessageKey = "flashMessage"
	flashLevelKey   = "flashLevel"
)

// Flash levels map straight onto the status styles in the templates.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

type Flash struct {
	Message string
	Level   string
}

type Manager struct {
	*scs.SessionManager
}

func NewManager(lifetime time.Duration) *Manager {
	sm := scs.New()
	sm.Lifetime = lifetime
	sm.Cookie.HttpOnly = true

	return &Manager{SessionManager: sm}
}

// LoginUser associates the session with the user and rotates the
// session token to prevent fixation.
func (m *Manager) LoginUser(ctx context.Context, userID uint) error {
	if err := m.RenewToken(ctx); err != nil {
		return err
	}
	m.Put(ctx, userIDKey, int(userID))
	return nil
}

func (m *Manager) LogoutUser(ctx context.Context) error {
	return m.Destroy(ctx)
}

// UserID returns the authenticated user's id, or 0 for anonymous
// sessions.
func (m *Manager) UserID(ctx context.Context) uint {
	return uint(m.GetInt(ctx, userIDKey))
}

func (m *Manager) PutFlash(ctx context.Context, level, message string) {
	m.Put(ctx, flashMessageKey, message)
	m.Put(ctx, flashLevelKey, level)
}

// PopFlash removes and returns the pending flash message, if any.
func (m *Manager) PopFlash(ctx context.Context) *Flash {
	message := m.PopString(ctx, flashMessageKey)
	if message == "" {
		return nil
	}

	return &Flash{
		Message: message,
		Level:   m.PopString(ctx, flashLevelKey),
	}
}
