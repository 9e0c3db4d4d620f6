// Package domain contains the core business entities of the task service and
// the error taxonomy shared by every layer above it. It depends on nothing
// inside the module, so stores, services and handlers can all speak in terms
// of domain.User, domain.Task and domain.Error.
package domain
