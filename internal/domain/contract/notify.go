package contract

import "context"

// Sender delivers one rendered message to one channel configuration.
type Sender interface {
	Name() string
	Send(ctx context.Context, title, text string) error
}

// ListFile is the fetched state of a published list. Token is the opaque
// value the store checks on write.
type ListFile struct {
	Content string
	Token   string
	Exists  bool
}

// ListStore reads and conditionally writes one list file. Store returns
// domain.ErrListConflict when the token no longer matches.
type ListStore interface {
	Name() string
	Fetch(ctx context.Context) (ListFile, error)
	Store(ctx context.Context, content string, previous ListFile) error
}
