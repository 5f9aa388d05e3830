// Package notify delivers fire-and-forget user notifications ("toasts").
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/quizzer/internal/logging"
)

// Notifier reports the outcome of a user action. Implementations must not
// block the caller for long and never return errors.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Console prints notifications to a writer, styled for terminals.
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
}

func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("#22c55e")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
	}
}

func (c *Console) Success(msg string) {
	c.print(c.success.Render("✔ " + msg))
}

func (c *Console) Failure(msg string) {
	c.print(c.failure.Render("✖ " + msg))
}

func (c *Console) print(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.w, s)
}

// Log records notifications through a Logger.
type Log struct {
	logger logging.Logger
}

func NewLog(l logging.Logger) *Log {
	return &Log{logger: l.With("component", "notify")}
}

func (l *Log) Success(msg string) {
	l.logger.Info(context.Background(), msg, "outcome", "success")
}

func (l *Log) Failure(msg string) {
	l.logger.Warn(context.Background(), msg, "outcome", "failure")
}

// Multi fans a notification out to every wrapped Notifier in order.
type Multi []Notifier

func (m Multi) Success(msg string) {
	for _, n := range m {
		n.Success(msg)
	}
}

func (m Multi) Failure(msg string) {
	for _, n := range m {
		n.Failure(msg)
	}
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Success(string) {}
func (discard) Failure(string) {}
