/*
Package concierge is a German-language hotel booking assistant built as a deterministic dialogue engine.

Every inbound chat message runs through one pipeline: the message is sanitized, the user's
session is locked and loaded, an intent and entities (accommodation, country, city, services,
number of people) are extracted against a catalog, and a finite workflow decides the reply and
the next state. Sessions are persisted per user, so a conversation may span many requests,
processes or replicas.

# Workflow

Two flows share one state machine:

  - Booking: select hotel, select services, select number of people, confirm. A confirmed
    booking yields a BookingRecord and the session starts over on the next message.
  - Recommendation: ask for a country, then a city, then list matching accommodations.

Cancellation ("abbrechen") resets the session from any step.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/concierge"
	)

	func main() {
		eng, err := concierge.New(nil) // built-in catalog, in-memory sessions
		if err != nil {
			log.Fatal(err)
		}

		turn, err := eng.ProcessTurn(context.Background(), "user-1", "Ich möchte buchen")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(turn.Response)
	}

Persistence, distributed locking and observability are injected with options such as
WithStore, WithLocker and WithLifecycleHooks. The cmd/concierge binary wires them from
configuration and serves the engine in the terminal, over HTTP/WebSocket, or as an MCP server.
*/
package concierge
