package view

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orgdesk/admin/internal/notify"
)

const (
	toastTTL      = 4 * time.Second
	toastInterval = 250 * time.Millisecond
	maxToasts     = 3
)

var toastColors = map[notify.Kind]lipgloss.Color{
	notify.KindPositive: lipgloss.Color("46"),
	notify.KindNegative: lipgloss.Color("196"),
	notify.KindWarning:  lipgloss.Color("214"),
}

type ToastTickMsg time.Time

type toast struct {
	notification notify.Notification
	expires      time.Time
}

// Toasts shows the notifications stores push into a buffer, newest last,
// each for a few seconds.
type Toasts struct {
	source *notify.Buffer
	shown  []toast
}

func NewToasts(source *notify.Buffer) Toasts {
	return Toasts{source: source}
}

func (t Toasts) Tick() tea.Cmd {
	return tea.Tick(toastInterval, func(now time.Time) tea.Msg { return ToastTickMsg(now) })
}

// Advance pulls new notifications and drops expired ones.
func (t Toasts) Advance(now time.Time) Toasts {
	kept := make([]toast, 0, len(t.shown))

	for _, s := range t.shown {
		if now.Before(s.expires) {
			kept = append(kept, s)
		}
	}

	for _, n := range t.source.Drain() {
		kept = append(kept, toast{notification: n, expires: now.Add(toastTTL)})
	}

	if len(kept) > maxToasts {
		kept = kept[len(kept)-maxToasts:]
	}

	t.shown = kept

	return t
}

func (t Toasts) Len() int { return len(t.shown) }

func (t Toasts) View() string {
	lines := make([]string, 0, len(t.shown))

	for _, s := range t.shown {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(toastColors[s.notification.Kind]).
			Render("● "+s.notification.Message))
	}

	return strings.Join(lines, "\n")
}
