// Package content owns the learning-content contract: strict schema
// validation of externally generated lessons, a deterministic fallback
// generator that needs no external dependency, and a normalizer that repairs
// validated-but-imperfect content at the smallest meaningful granularity.
package content
