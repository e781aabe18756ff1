package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Repos run against Tx when it is set so a service can span several repo
// calls with one transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Background is a convenience for callers outside a request, such as the
// deletion listener.
func Background() Context {
	return Context{Ctx: context.Background()}
}
