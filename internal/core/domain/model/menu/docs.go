// Package menu models the versioned restaurant menu that orders are priced against.
//
// A restaurant publishes menu versions; at most one of them is CONFIRMED at a time
// and confirming a version demotes the previous one to DRAFT. Orders never read the
// live menu after creation: they embed a Snapshot, an immutable deep copy of the
// confirmed version's items.
package menu
