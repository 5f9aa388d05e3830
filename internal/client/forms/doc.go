// Package forms holds the client-side form controllers: the registration
// form with its validation state machine and the create-study-set dialog.
//
// Controllers keep their draft in memory, recompute validity synchronously on
// every field change and talk to the remote service through small interfaces
// (Registrar, Creator) so they can be exercised without a network.
package forms
