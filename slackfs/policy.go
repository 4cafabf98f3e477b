package slackfs

// Lifetime names how long cached remote state is kept.
type Lifetime int

const (
	// LifetimeProcess keeps cached state until the process exits. There is
	// no TTL, no invalidation and no re-fetch.
	LifetimeProcess Lifetime = iota
)

// IndexLifetime is the cache lifetime of collection item indexes and of
// downloaded item content.
const IndexLifetime = LifetimeProcess

func (l Lifetime) String() string {
	switch l {
	case LifetimeProcess:
		return "process lifetime"
	}
	return "unknown"
}
