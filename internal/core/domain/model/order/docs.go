// Package order implements the restaurant Order aggregate and its lifecycle.
//
// An order embeds the confirmed menu snapshot it was priced against, its validated
// line items and the server-derived total. Status follows a strict state machine:
//
//	CREATED -> PAID -> COOKING -> READY -> COMPLETED
//	   \________\________\________\-----> CANCELLED
//
// COMPLETED and CANCELLED are terminal. Each mutating method moves the aggregate
// forward in memory only; persisting the change is the repository's job, and it is
// always conditioned on the status the caller observed before mutating.
package order
