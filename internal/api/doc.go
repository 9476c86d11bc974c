// Package api exposes accounts and courses over HTTP. Handlers decode and
// validate requests, call the services with the authenticated account taken
// from the request context, and translate service errors into responses
// (see HandleAPIError).
package api
