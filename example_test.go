package concierge_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/concierge"
	"github.com/aretw0/concierge/pkg/catalog"
)

// ExampleNew runs a complete booking conversation against the built-in catalog.
func ExampleNew() {
	eng, err := concierge.New(catalog.Default(),
		concierge.WithReferenceGenerator(func() string { return "B-0001" }),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for _, msg := range []string{"Ich möchte buchen", "Hotel Spree", "frühstück", "2", "bestätigen"} {
		turn, err := eng.ProcessTurn(ctx, "guest", msg)
		if err != nil {
			log.Fatal(err)
		}
		if turn.Confirmed() {
			b := turn.Booking
			fmt.Printf("%s: %s in %s for %d people, %.0f\n", b.Reference, b.HotelName, b.City, b.People, b.TotalPrice)
		}
	}
	// Output:
	// B-0001: Hotel Spree in Berlin for 2 people, 210
}

// ExampleEngine_ProcessTurn_invalidMessage shows that non-text messages never change a session.
func ExampleEngine_ProcessTurn_invalidMessage() {
	eng, err := concierge.New(nil)
	if err != nil {
		log.Fatal(err)
	}

	turn, err := eng.ProcessTurn(context.Background(), "guest", map[string]any{"text": "buchen"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(turn.Response)
	fmt.Println(turn.Session.Step)
	// Output:
	// Ungültiges Nachrichtenformat
	// initial
}
