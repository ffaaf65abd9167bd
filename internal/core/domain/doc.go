// Package domain defines the core business entities for Peta search.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ContentRecord: A normalised content unit from the site pipeline
//   - SearchDocument: The indexed, immutable projection of a record
//   - SearchArtifact: Documents plus inverted indexes plus metadata
//   - ScoredResult: A ranked search hit with highlights
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
