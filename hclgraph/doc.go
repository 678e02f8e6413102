// Package hclgraph loads HCL documents into regraft node graphs.
//
// Attributes are evaluated with an empty evaluation context (literals and
// constant expressions only) and converted through ctyconv. Blocks become
// nested mappings: each block of a given type contributes one element to a
// sequence stored under the block type, and a labeled block records its
// labels under a "labels" sequence field inside its own mapping.
//
// The resulting graph is a tree; it is a convenient source of updatable
// state, not a faithful reproduction of HCL semantics (no variables,
// functions, or cross-references).
package hclgraph
