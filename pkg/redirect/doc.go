// Package redirect carries the outcome of a client-side redirect back to the
// code that started it. A Handler is a one-shot channel: the URL callback or
// the failure notification produces, Await consumes.
package redirect
