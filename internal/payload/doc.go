// Package payload decodes builder payloads into a format-neutral tree.
//
// A decoded payload is a tagged union of Null, Scalar, Sequence and Mapping
// nodes. Mappings preserve key order so that walks are deterministic.
// Two wire encodings are supported:
//
//   - JSON documents (ParseJSON)
//   - the store's serialized-scalar encoding, as produced by PHP's
//     serialize() (Unserialize)
//
// Walk visits every node of a tree with an explicit stack, so arbitrarily
// deep payloads cannot exhaust the goroutine stack.
package payload
