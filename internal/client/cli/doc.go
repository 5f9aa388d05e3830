// Package cli provides the interactive quizzer command-line client.
//
// It wires configuration, logging, the HTTP API client, the shared query
// store and the application services behind a small REPL.
//
// Key features:
//   - Register an account through the validated registration form
//   - Dashboard of study sets served from the shared cache
//   - Create a study set; the dashboard refetches afterwards
//   - Refresh on demand
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// A background watcher follows the study-sets cache entry and shows in the
// prompt whether the API was reachable on the last fetch.
package cli
