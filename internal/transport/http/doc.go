// Package http contains the HTTP handlers for the dashboard API. Handlers
// are thin: they parse and validate request parameters, delegate to the
// services layer, and render JSON (errors as RFC 7807 problem details).
package http
