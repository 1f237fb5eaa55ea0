// Package notify is the user-facing notification capability and the two
// helpers every store reports outcomes through.
package notify

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/orgdesk/admin/internal/transport"
)

// Kind is the severity of a notification.
type Kind string

const (
	KindPositive Kind = "positive"
	KindNegative Kind = "negative"
	KindWarning  Kind = "warning"
)

// DefaultErrorMessage is shown when a failure carries no usable text.
const DefaultErrorMessage = "Error"

const defaultSuccessMessage = "Success"

type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Notifier shows notifications. Calls are fire-and-forget.
type Notifier interface {
	Notify(n Notification)
}

// Message extracts the text to show for err: the server message of a
// transport error, the text of any other error, or DefaultErrorMessage.
// Transport errors without a server message never leak their internals.
func Message(err error) string {
	if err == nil {
		return DefaultErrorMessage
	}

	var te *transport.Error
	if errors.As(err, &te) {
		if te.Kind == transport.KindTransport {
			if te.Message != "" {
				return te.Message
			}

			return DefaultErrorMessage
		}

		if te.Message != "" {
			return te.Message
		}

		if te.Err != nil && te.Err.Error() != "" {
			return te.Err.Error()
		}

		return DefaultErrorMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return DefaultErrorMessage
}

// ReportError shows a negative notification for err.
func ReportError(n Notifier, err error) {
	n.Notify(Notification{Kind: KindNegative, Message: Message(err)})
}

// ReportSuccess shows a positive notification.
func ReportSuccess(n Notifier, message string) {
	if message == "" {
		message = defaultSuccessMessage
	}

	n.Notify(Notification{Kind: KindPositive, Message: message})
}

// ReportWarning shows a warning notification.
func ReportWarning(n Notifier, message string) {
	n.Notify(Notification{Kind: KindWarning, Message: message})
}

// LogNotifier writes notifications to a slog logger, for headless runs.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch n.Kind {
	case KindNegative:
		logger.Error("notification", "message", n.Message)
	case KindWarning:
		logger.Warn("notification", "message", n.Message)
	default:
		logger.Info("notification", "message", n.Message)
	}
}

// Buffer keeps notifications in memory until drained. The TUI renders them
// as toasts.
type Buffer struct {
	mu    sync.Mutex
	items []Notification
}

func (b *Buffer) Notify(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append(b.items, n)
}

// Drain returns every buffered notification and empties the buffer.
func (b *Buffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.items
	b.items = nil

	return out
}

// Len returns the number of buffered notifications.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.items)
}
