// Package views renders client screens as text for the interactive shell.
package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/quizzer/internal/client/models"
	"github.com/dmitrijs2005/quizzer/internal/client/query"
)

const (
	DashboardTitle = "Dashboard"
	LoadingText    = "Loading..."
	EmptyText      = "No study sets found"
	CreateAction   = "Create study set"
)

// VisibleStudySets returns the sets that get a card: those with a title.
func VisibleStudySets(sets []models.StudySet) []models.StudySet {
	out := make([]models.StudySet, 0, len(sets))
	for _, s := range sets {
		if s.HasTitle() {
			out = append(out, s)
		}
	}
	return out
}

type styles struct {
	header lipgloss.Style
	card   lipgloss.Style
	muted  lipgloss.Style
	err    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa")),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#64748b")).
			Padding(0, 1),
		muted: r.NewStyle().Faint(true),
		err:   r.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	}
}

// RenderDashboard writes the study-sets screen for the given query state.
//
// Loading without data prints the loading line. An error prints the error line
// and then whatever data was retained. A resolved empty list prints the empty
// state. Each set with a title gets its own card.
func RenderDashboard(w io.Writer, res query.Result[[]models.StudySet]) error {
	st := newStyles(w)

	if _, err := fmt.Fprintf(w, "%s  %s\n", st.header.Render(DashboardTitle), st.muted.Render("["+CreateAction+": create]")); err != nil {
		return err
	}

	if res.Loading() {
		_, err := fmt.Fprintln(w, LoadingText)
		return err
	}

	if res.Status == query.StatusError {
		if _, err := fmt.Fprintln(w, st.err.Render(fmt.Sprintf("Failed to load study sets: %v", res.Err))); err != nil {
			return err
		}
		if !res.HasData {
			return nil
		}
	}

	if len(res.Data) == 0 {
		_, err := fmt.Fprintln(w, EmptyText)
		return err
	}

	for _, s := range VisibleStudySets(res.Data) {
		if _, err := fmt.Fprintln(w, st.card.Render(s.Title)); err != nil {
			return err
		}
	}
	return nil
}
