// Package primitives defines the serializable group definition and the
// builders that produce one.
//
// A Definition is what a group file holds: a name, an optional list of
// element names and either a multiplication table or a list of generating
// permutations. Validation ensures the table describes a group whose
// identity is element 0, which every other package relies on.
//
// Core invariants:
// - Element 0 is the identity of every validated table
// - Orders never exceed MaxOrder
// - Events are values and are never mutated after construction
package primitives
