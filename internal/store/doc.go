// Package store is the e-commerce data-access façade over Neo4j.
//
// The graph holds three node labels and three relationship types:
//
//	(:Customer {id, name})-[:BOUGHT]->(:Order {id, time})-[:CONTAINS]->(:Item {id, name, price})
//	(:Customer)-[:VIEWED]->(:Item)
//
// Customers are always looked up by name. Relationship creation matches both
// endpoints first, so a missing endpoint creates nothing; Store logs that at
// warn level, or returns ErrCodeEndpointNotFound when built with
// WithStrictRelationships(true).
//
// Analytical reads count with multiplicity: an item in two orders of the same
// customer is counted, and priced, twice.
package store
