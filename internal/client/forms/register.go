package forms

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/quizzer/internal/client/notify"
	"github.com/dmitrijs2005/quizzer/internal/validation"
)

const (
	RegisterSuccessMessage = "Registration successful"
	RegisterFailureMessage = "Registration failed"
)

var ErrRegistrationFailed = errors.New("registration failed")

// State is the lifecycle position of a form.
type State string

const (
	StateEditing     State = "editing"
	StateSubmittable State = "submittable"
	StateSubmitting  State = "submitting"
	StateSucceeded   State = "succeeded"
	StateFailed      State = "failed"
)

// Credentials is the registration draft.
type Credentials struct {
	Email    string
	Password string
}

// FieldErrors holds the visible message per field; "" means valid or not yet
// edited.
type FieldErrors struct {
	Email    string
	Password string
}

func (fe FieldErrors) Empty() bool { return fe.Email == "" && fe.Password == "" }

// Registrar creates accounts on the remote service.
type Registrar interface {
	Register(ctx context.Context, c Credentials) error
}

// RegisterView is a read-only snapshot of the form for rendering.
type RegisterView struct {
	Draft       Credentials
	FieldErrors FieldErrors
	FormError   string
	State       State
}

// RegisterForm drives the registration flow. It is safe for concurrent use.
type RegisterForm struct {
	mu sync.Mutex

	registrar Registrar
	notifier  notify.Notifier

	draft     Credentials
	emailErr  error
	passErr   error
	touched   struct{ email, password bool }
	state     State
	formError string
}

func NewRegisterForm(r Registrar, n notify.Notifier) *RegisterForm {
	if n == nil {
		n = notify.Discard
	}
	f := &RegisterForm{registrar: r, notifier: n}
	f.mu.Lock()
	f.revalidate()
	f.mu.Unlock()
	return f
}

func (f *RegisterForm) SetEmail(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft.Email = v
	f.touched.email = true
	f.emailErr = validation.ValidateEmail(v)
	f.edited()
}

func (f *RegisterForm) SetPassword(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft.Password = v
	f.touched.password = true
	f.passErr = validation.ValidatePassword(v)
	f.edited()
}

// edited recomputes the state after a field change. A form edited while a
// submission is in flight keeps StateSubmitting until the outcome lands.
func (f *RegisterForm) edited() {
	if f.state == StateSubmitting {
		return
	}
	f.formError = ""
	f.state = f.editState()
}

func (f *RegisterForm) editState() State {
	if f.emailErr == nil && f.passErr == nil {
		return StateSubmittable
	}
	return StateEditing
}

// canSubmit allows a valid draft through, including a retry of the same
// draft after a failed registration.
func (f *RegisterForm) canSubmit() bool {
	switch f.state {
	case StateSubmittable:
		return true
	case StateFailed:
		return f.emailErr == nil && f.passErr == nil
	}
	return false
}

func (f *RegisterForm) revalidate() {
	f.emailErr = validation.ValidateEmail(f.draft.Email)
	f.passErr = validation.ValidatePassword(f.draft.Password)
	f.state = f.editState()
}

// Submit sends the draft when both fields are valid; a failed draft can be
// sent again without edits. A blocked submit returns
// false and a nil error without contacting the service; every field error
// becomes visible.
func (f *RegisterForm) Submit(ctx context.Context) (bool, error) {
	f.mu.Lock()
	if !f.canSubmit() {
		f.touched.email, f.touched.password = true, true
		f.mu.Unlock()
		return false, nil
	}
	snapshot := f.draft
	f.state = StateSubmitting
	f.formError = ""
	f.mu.Unlock()

	err := f.registrar.Register(ctx, snapshot)

	f.mu.Lock()
	if err != nil {
		f.state = StateFailed
		f.formError = RegisterFailureMessage
		f.mu.Unlock()
		f.notifier.Failure(RegisterFailureMessage)
		return true, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	f.draft = Credentials{}
	f.revalidate()
	f.touched.email, f.touched.password = false, false
	f.state = StateSucceeded
	f.mu.Unlock()

	f.notifier.Success(RegisterSuccessMessage)
	return true, nil
}

func (f *RegisterForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// FormError returns the submission error text, distinct from field errors.
func (f *RegisterForm) FormError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.formError
}

func (f *RegisterForm) FieldErrors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrors()
}

func (f *RegisterForm) fieldErrors() FieldErrors {
	var fe FieldErrors
	if f.touched.email {
		fe.Email = validation.Message(f.emailErr)
	}
	if f.touched.password {
		fe.Password = validation.Message(f.passErr)
	}
	return fe
}

func (f *RegisterForm) View() RegisterView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return RegisterView{
		Draft:       f.draft,
		FieldErrors: f.fieldErrors(),
		FormError:   f.formError,
		State:       f.state,
	}
}
