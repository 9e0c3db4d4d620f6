// Package memory provides map-backed implementations of the store ports for
// local development and tests. Data lives only as long as the process.
package memory
