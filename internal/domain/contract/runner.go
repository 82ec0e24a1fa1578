package contract

import "context"

type ServiceAction string

const (
	ActionStop    ServiceAction = "stop"
	ActionRestart ServiceAction = "restart"
	ActionStart   ServiceAction = "start"
)

// ServiceRunner invokes an init script action for a named service.
type ServiceRunner interface {
	Run(ctx context.Context, service string, action ServiceAction) error
}

// ProberRunner executes the external measurement tool inside its workdir.
type ProberRunner interface {
	Run(ctx context.Context, args []string) error
}

// Fetcher downloads a candidate list body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
