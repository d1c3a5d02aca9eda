/*
Package ports defines the driven ports (interfaces) of the playground host.

# Key Interfaces

  - PlaygroundStore: keeps live sessions for the HTTP server.
  - ExampleLibrary: read-only snippet source (e.g. a Loam repository).
  - Watchable: libraries that can report changed snippets.
  - SessionObserver: metrics sink for session lifecycle.
  - DistributedLocker: cross-replica session locks for shared stores.
*/
package ports
