// Package domain contains the core entities of the tidelog storage engine:
// the growable frame buffer, the on-disk frame layout, the record type
// catalogue, and the sentinel errors returned by the public API.
//
// The package has no dependencies on infrastructure concerns (file system,
// wireless drivers, logging) and is testable without mocks.
package domain
