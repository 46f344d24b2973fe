package ports

import "context"

// BackgroundRunner runs work detached from the request that started it. The context
// passed to fn is not cancelled when the request ends.
type BackgroundRunner interface {
	Go(fn func(ctx context.Context))
}
