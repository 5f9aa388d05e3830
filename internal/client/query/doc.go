// Package query is the client-side cache of remote results.
//
// # Overview
//
// A Store keeps one Entry per key with its load status (loading, success,
// error), the last successful value, the last error, the time of the last
// successful fetch and a stale flag. Query[T] and Mutation[In, Out] are thin
// typed facades over a Store.
//
// # Rules
//
//   - At most one fetch per key is in flight; concurrent reads join it.
//   - A failed fetch sets StatusError and keeps the previous value, so views
//     can keep showing it while surfacing the error.
//   - Entries never expire. Invalidate marks them stale; the next read
//     fetches again.
//   - Fetch outcomes are applied in completion order.
//   - Callers may stop waiting (context cancellation) without cancelling the
//     shared fetch; its result is still stored.
//
// Typical Usage
//
//	store := query.NewStore()
//	q := query.NewQuery(store, "study-sets", client.ListStudySets)
//	res, err := q.Get(ctx)
//	m := query.NewMutation(store, client.CreateStudySet, "study-sets")
//	_, err = m.Run(ctx, "Biology")
package query
