// Package api exposes the planner over JSON HTTP. Handlers translate requests
// into service calls and map service errors to status codes; they add no
// planning rules of their own.
package api
