// Package patchset is the side table of pending writes accumulated during
// one update call. It is keyed by node identity (*node.Node), so entries
// are non-owning: the cache lives exactly as long as the update call and
// never extends a node's lifetime beyond its natural reachability.
//
// Patches accumulate mapping-style (property name to pending node) even
// for sequence targets; a sequence-coercion flag on the patch tells the
// merge engine to re-materialize the result as an ordered sequence.
// Sequence targets additionally maintain a pending length, kept consistent
// by SetSequence as indices are written or the length is shrunk.
//
// A Cache must not be shared across concurrent update calls.
package patchset
