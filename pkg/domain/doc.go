// Package domain defines the entities exchanged with a Phiremock server:
// expectations, their request conditions, mock responses and scenario state.
//
// Entities are plain values. Code that needs a variation of an entity should
// derive a copy (see Expectation.WithResponse) instead of mutating one that
// may be shared. The fluent builders in pkg/builder are the usual way to
// construct them.
package domain
