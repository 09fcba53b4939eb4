package storefront

import (
	"context"
	"log"
)

// Session is the signed-in user as seen by the storefront.
type Session struct {
	UserID string
	Token  string
}

// SessionProvider exposes the current session, nil when signed out.
type SessionProvider interface {
	Session() *Session
}

// SessionFunc adapts a function to SessionProvider.
type SessionFunc func() *Session

func (f SessionFunc) Session() *Session { return f() }

// Notifier shows transient messages to the shopper.
type Notifier interface {
	Success(message string)
	Failure(err error)
}

// Redirector sends the browser to the processor's hosted checkout page.
type Redirector interface {
	RedirectToCheckout(ctx context.Context, sessionID, url string) error
}

// LogNotifier writes notifications to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Success(message string) { log.Printf("✅ %s", message) }
func (LogNotifier) Failure(err error)      { log.Printf("❌ %v", err) }
