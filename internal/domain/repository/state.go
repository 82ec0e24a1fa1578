package repository

// RunLock serializes runs that share one configuration.
type RunLock interface {
	TryLock() (release func() error, err error)
}
