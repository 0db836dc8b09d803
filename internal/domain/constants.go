package domain

// Paging limits for listing and trade history queries
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// ClampLimit returns limit bounded to (0, MaxPageLimit], using
// DefaultPageLimit for non-positive values.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPageLimit
	case limit > MaxPageLimit:
		return MaxPageLimit
	}
	return limit
}
