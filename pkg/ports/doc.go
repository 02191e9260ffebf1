/*
Package ports defines the driven ports (interfaces) for the Concierge engine.

These interfaces decouple the dialogue core from external implementations, allowing
the engine to work with various session storage backends and transports.

# Key Interfaces

  - SessionStore: Responsible for persisting and loading per-user sessions.
  - DistributedLocker: Provides distributed locking so turns of one user are serialized across replicas.
  - Conversation: The engine surface consumed by transport adapters (HTTP, MCP, terminal).
*/
package ports
