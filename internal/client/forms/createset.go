package forms

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/quizzer/internal/client/models"
	"github.com/dmitrijs2005/quizzer/internal/validation"
)

var ErrDialogClosed = errors.New("create dialog is closed")

// CreateDraft is the create-study-set form schema. Name maps to the
// study-set title on the wire.
type CreateDraft struct {
	Name string `json:"name" validate:"required"`
}

// Creator creates study sets on the remote service.
type Creator interface {
	Create(ctx context.Context, title string) (*models.StudySet, error)
}

// CreateDialog is the modal create flow: Open, SetName, Submit.
type CreateDialog struct {
	mu      sync.Mutex
	creator Creator
	open    bool
	busy    bool
	draft   CreateDraft
	errs    validation.FieldErrors
}

func NewCreateDialog(c Creator) *CreateDialog {
	return &CreateDialog{creator: c}
}

// Open shows the dialog with an empty draft.
func (d *CreateDialog) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.draft = CreateDraft{}
	d.errs = nil
}

func (d *CreateDialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	d.draft = CreateDraft{}
	d.errs = nil
}

func (d *CreateDialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *CreateDialog) SetName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft.Name = name
	d.errs = nil
}

func (d *CreateDialog) Draft() CreateDraft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

// Errors returns the schema violations of the last blocked submit.
func (d *CreateDialog) Errors() validation.FieldErrors {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errs
}

// Submit validates the draft and creates the study set. An invalid draft
// blocks without a request and the dialog stays as it is. Otherwise the draft
// is cleared whatever the outcome; the dialog closes only on success.
func (d *CreateDialog) Submit(ctx context.Context) (*models.StudySet, bool, error) {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return nil, false, ErrDialogClosed
	}
	if d.busy {
		d.mu.Unlock()
		return nil, false, nil
	}
	if err := validation.Struct(d.draft); err != nil {
		var fe validation.FieldErrors
		if errors.As(err, &fe) {
			d.errs = fe
		}
		d.mu.Unlock()
		return nil, false, nil
	}
	title := d.draft.Name
	d.busy = true
	d.mu.Unlock()

	created, err := d.creator.Create(ctx, title)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.busy = false
	d.draft = CreateDraft{}
	if err != nil {
		return nil, true, err
	}
	d.open = false
	return created, true, nil
}
