package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/quizzer/internal/client/models"
	"github.com/dmitrijs2005/quizzer/internal/client/query"
	"github.com/dmitrijs2005/quizzer/internal/client/views"
)

// List shows the dashboard. Before the first fetch resolves the loading
// state is printed; a cached list is shown straight from the store.
func (a *App) List(ctx context.Context) error {
	if r, ok := a.studySets.Peek(); !ok || r.Loading() {
		if err := views.RenderDashboard(a.out, query.Result[[]models.StudySet]{Status: query.StatusLoading}); err != nil {
			return err
		}
	}

	r, err := a.studySets.List(ctx)
	if err != nil {
		a.logger.Warn(ctx, "list study sets", "error", err)
	}
	return views.RenderDashboard(a.out, r)
}

// Refresh refetches the list regardless of its freshness and shows it.
func (a *App) Refresh(ctx context.Context) error {
	r, err := a.studySets.Refresh(ctx)
	if err != nil {
		a.logger.Warn(ctx, "refresh study sets", "error", err)
	}
	return views.RenderDashboard(a.out, r)
}

// Create runs the create dialog once: it reads a name and submits it. A
// blank name prints the validation message and sends nothing. After a
// successful create the refreshed dashboard is shown.
func (a *App) Create(ctx context.Context) error {
	a.createDialog.Open()
	defer a.createDialog.Close()

	name, err := getSimpleText(a.reader, "Enter study set name", a.out)
	if err != nil {
		return err
	}
	a.createDialog.SetName(name)

	created, sent, err := a.createDialog.Submit(ctx)
	if !sent && err == nil {
		errs := a.createDialog.Errors()
		fields := make([]string, 0, len(errs))
		for f := range errs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(a.out, "%s: %s\n", f, errs[f])
		}
		return nil
	}
	if err != nil {
		return err
	}

	a.logger.Debug(ctx, "created", "id", created.ID)
	return a.List(ctx)
}
