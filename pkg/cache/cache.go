// Package cache provides the caching layer shared by the CLI and the
// HTTP API. Analysis results and rendered artifacts are cached under
// SHA-256 keys derived from the canonical study encoding; the engine is
// a total function, so a key collision-free cache hit is always valid.
package cache

import (
	"context"
	"time"
)

// TTLs per entry class. Results and artifacts are pure functions of the
// study, so the TTLs only bound disk usage, not staleness.
const (
	// TTLStudy bounds retained study payloads.
	TTLStudy = 30 * 24 * time.Hour
	// TTLResult bounds retained analysis results.
	TTLResult = 30 * 24 * time.Hour
	// TTLArtifact bounds rendered artifacts (dot/svg/png/csv).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface for cached payloads.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKeyOpts distinguishes rendered artifacts of the same study.
type ArtifactKeyOpts struct {
	Format string // "dot", "svg", "png", "csv", "micmac"
	Detail bool   // include descriptions in node labels
}

// Keyer generates cache keys. The studyHash argument is the SHA-256 of
// the study's canonical JSON encoding.
type Keyer interface {
	// StudyKey keys a stored study payload.
	StudyKey(studyHash string) string

	// ResultKey keys an analysis result.
	ResultKey(studyHash string) string

	// ArtifactKey keys one rendered artifact of a study.
	ArtifactKey(studyHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a class prefix plus a SHA-256
// hash of the identifying components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// StudyKey generates a key for a study payload.
func (k *DefaultKeyer) StudyKey(studyHash string) string {
	return "study:" + studyHash
}

// ResultKey generates a key for an analysis result.
func (k *DefaultKeyer) ResultKey(studyHash string) string {
	return hashKey("result", studyHash)
}

// ArtifactKey generates a key for a rendered artifact. Options are part
// of the hash, so different formats of the same study never collide.
func (k *DefaultKeyer) ArtifactKey(studyHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", studyHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g.
// separating cache entries per user in a shared redis deployment.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// StudyKey generates a prefixed study key.
func (k *ScopedKeyer) StudyKey(studyHash string) string {
	return k.prefix + k.inner.StudyKey(studyHash)
}

// ResultKey generates a prefixed result key.
func (k *ScopedKeyer) ResultKey(studyHash string) string {
	return k.prefix + k.inner.ResultKey(studyHash)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(studyHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(studyHash, opts)
}
