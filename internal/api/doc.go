// Package api adapts HTTP requests to the user and task services.
//
// Handlers decode and validate request bodies, call the services, and
// translate domain errors into status codes and JSON error bodies. Routing
// and authentication are wired by the caller; see cmd/server.
package api
