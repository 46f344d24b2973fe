// Package memory provides in-process repositories with the same conditional-write
// semantics as the PostgreSQL adapters. They back STORAGE=memory and the tests.
//
// Every read returns a freshly restored aggregate, so callers mutating what they
// loaded never change stored state until they write it back.
package memory
