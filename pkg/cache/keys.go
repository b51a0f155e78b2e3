package cache

// Keyer generates cache keys for engine artifacts. Implementations decide
// how inputs map into the key namespace; [ScopedKeyer] layers document or
// tenant prefixes on top without changing the scheme underneath.
type Keyer interface {
	// LayoutKey returns the key for a computed layout. treeHash fingerprints
	// the forest content (see [Hash]); opts captures every engine parameter
	// that shapes the geometry. A change to either yields a different key,
	// which is how reconfigured engines never see stale entries.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts captures the layout parameters a cached result depends on,
// one field per engine knob. Option sets that differ in any field never
// share an entry. Parallelism is deliberately absent: it does not change the
// output, so keying on it would only fragment the cache.
type LayoutKeyOpts struct {
	GapAngleDegrees   float64 `json:"gapAngleDegrees"`
	MinChildrenForGap int     `json:"minChildrenForGap"`
	EnableGaps        bool    `json:"enableGaps"`
	InnerRadiusRatio  float64 `json:"innerRadiusRatio"`
	OuterRadiusRatio  float64 `json:"outerRadiusRatio"`
	MaxDepth          int     `json:"maxDepth"`
	MaxNodes          int     `json:"maxNodes"`
	MinSectorAngle    float64 `json:"minSectorAngle"`
	WeightModel       string  `json:"weightModel"`
}

// DefaultKeyer is the standard key scheme: a stable class prefix plus a
// SHA-256 over the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ScopedKeyer prepends a fixed prefix to every key from an inner scheme.
// The server scopes keys per document with it, so invalidating one
// document's cached layouts never touches another's.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses the default
// scheme.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(treeHash, opts)
}
