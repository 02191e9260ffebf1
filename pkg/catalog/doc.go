/*
Package catalog provides the static, read-only reference data of the dialogue engine:
the offerable accommodations and the intent/keyword/service vocabulary.

A Catalog is loaded once at startup from one or more JSON or YAML documents (or the
embedded default) and is immutable thereafter, so it can be shared freely between
goroutines.

A document may contain any of the following top-level keys:

	currency: "$"
	hotels:
	  - name: Hotel Adler
	    country: Deutschland
	    city: Berlin
	    price: 120
	    services: [wifi, frühstück]
	intents:
	  - intent: buchen
	    keywords: [buchen, reservieren]
	    response: "..."
	serviceKeywords: [wifi, frühstück, room service]

When several documents are loaded their lists are concatenated in load order, which
matters because intent rules are evaluated in catalog order.
*/
package catalog
