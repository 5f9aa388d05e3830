package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and a password, feeds them into the
// registration form and submits it.
//
// A blocked submit prints the field errors and returns nil; nothing is sent.
// A rejected registration prints the form error and returns the service
// error. Success and failure toasts come from the form's notifier.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	a.registerForm.SetEmail(email)

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	a.registerForm.SetPassword(password)

	sent, err := a.registerForm.Submit(ctx)
	if !sent {
		fe := a.registerForm.FieldErrors()
		for _, msg := range []string{fe.Email, fe.Password} {
			if msg != "" {
				fmt.Fprintln(a.out, msg)
			}
		}
		return nil
	}
	if err != nil {
		fmt.Fprintln(a.out, a.registerForm.FormError())
		return err
	}

	a.setUserName(email)
	return nil
}
