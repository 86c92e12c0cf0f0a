// Package domain defines the core business entities for reclaim.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ContentRecord: A deletable unit of content (page, post) with metadata
//   - MediaRecord: A stored asset with a canonical URL and size variants
//   - Candidate: A media reference discovered in a record's payload
//   - Usage: The set of other records still referencing a medium
//   - Outcome: The delete / reparent / skip decision for one medium
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
