// Package services holds stateless domain services that operate across aggregates.
//
// PriceValidator re-derives every order line price from the confirmed menu snapshot
// so that a client can never set the amount it is charged.
package services
