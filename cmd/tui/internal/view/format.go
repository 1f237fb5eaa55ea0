package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const apiTimeout = 15 * time.Second

// FormatAmount formats a decimal amount with two places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// APICtx returns a context with a standard timeout for backend calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

// run calls op in a command with a fresh timeout.
func run(op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return doneMsg{err: op(ctx)}
	}
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}

	return " "
}
