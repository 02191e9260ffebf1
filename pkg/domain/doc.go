/*
Package domain contains the core domain models of the Concierge dialogue engine.

It defines the vocabulary shared by every other package: the workflow steps of the
booking state machine, intents and entities extracted from user messages, the per-user
session state, and the booking record produced when a reservation is confirmed. This
package is kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Step: The position of a user in the booking/recommendation workflow.
  - Intent: The goal detected for a turn (book, recommend, cancel, unknown).
  - Entities: Structured values extracted from a message (accommodation, city, services...).
  - SessionState: The per-user accumulation of step and entities across turns.
  - BookingRecord: The immutable snapshot emitted when a booking is confirmed.
  - Turn: The result of processing one message.
*/
package domain
