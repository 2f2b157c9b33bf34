package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several
// deployments can share one Redis without colliding.
//
//	keyer := cache.NewScopedKeyer(nil, "pinmap:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// BaseMapKey returns the prefixed base-map key.
func (k *ScopedKeyer) BaseMapKey(area, projection string, opts BaseMapKeyOpts) string {
	return k.prefix + k.inner.BaseMapKey(area, projection, opts)
}

// PlanKey returns the prefixed plan key.
func (k *ScopedKeyer) PlanKey(inputHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(inputHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planHash, opts)
}
