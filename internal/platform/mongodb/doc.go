// Package mongodb implements the store ports on top of MongoDB. Users and tasks
// live in separate collections keyed by their caller-visible ids, mirroring a
// document store where each entity is a single keyed document.
package mongodb
