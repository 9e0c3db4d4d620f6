// Package store defines the repository ports the services depend on. Each
// port exposes id-based and secondary-key lookups plus save/delete, and is
// independent of the concrete storage technology behind it (see
// internal/platform/postgres, internal/platform/mongo and
// internal/platform/memory).
package store
