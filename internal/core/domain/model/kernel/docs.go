// Package kernel provides the primitives shared by every aggregate of the ordering
// domain.
//
// The package includes:
//   - UUID: identifier value object for orders and print jobs
//   - Money helpers: 2-decimal rounding and the 0.01 price tolerance, on shopspring/decimal
//   - Clock: the time source, injected so staleness and TTL rules are testable
package kernel
