package uploader

import "context"

// ConnectivityWaiter reports host network state. When the host is offline
// the coordinator blocks in WaitOnline instead of burning retry attempts.
type ConnectivityWaiter interface {
	Online() bool
	WaitOnline(ctx context.Context) error
}

// AlwaysOnline is the connectivity source for hosts with a fixed uplink
type AlwaysOnline struct{}

func (AlwaysOnline) Online() bool { return true }

func (AlwaysOnline) WaitOnline(ctx context.Context) error { return ctx.Err() }
