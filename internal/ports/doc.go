// Package ports defines the interfaces that connect the tidelog core to the
// hardware and host environment.
//
// The storage engine and connectivity manager depend only on these
// interfaces. Adapters (internal/adapters) implement them for a concrete
// platform: the host file system, a stub wireless link, a sensor simulator.
// On-target builds supply their own implementations at build configuration
// time instead of conditional compilation scattered through the core.
//
//   - [Medium]: removable flash storage (open, enumerate, remove, rename)
//   - [Stream]: one open file on the medium, append-mode with explicit flush
//   - [LinkDriver]: wireless capability (join, access point, status)
//   - [StatusSink]: persisted human-readable status string
//   - [Restarter]: device restart request, used by safe-mode fallback
//   - [Source]: polled producer of typed records for the data log
package ports
