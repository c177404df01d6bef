// Package memory holds map-backed implementations of the repository
// interfaces. They are safe for concurrent use and are what the use case and
// handler tests run against.
package memory
