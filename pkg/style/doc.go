// Package style resolves marker styles.
//
// A [Style] is the fully specified look of one location set's markers and
// labels. Users send partial [Override] values (from the web client as JSON,
// from preset files as TOML); a [Resolver] fills every missing field from
// its defaults independently.
//
//	r := style.NewResolver(style.Defaults())
//	s, err := r.Resolve(style.Override{Color: ptr("#0d6efd")})
//
// Colors are parsed strictly. A malformed hex string is an INVALID_COLOR
// error, never a panic. Unknown shapes fall back to [Circle].
//
// The default style is an immutable value: [Defaults] returns a fresh copy
// each call and a Resolver keeps its own copy.
package style
