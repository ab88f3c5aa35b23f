// Package failure defines the error taxonomy shared by the checkout packages.
// Transport errors are retryable; server and user-facing errors carry text
// meant for display; configuration and internal errors are logged and shown
// through a generic message; validation errors stay local to a field.
package failure
