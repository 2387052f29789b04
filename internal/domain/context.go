// Package domain defines core entities, ports, and domain-specific errors
// shared by the collector, processor, and notifier jobs.
package domain

import "context"

// Context is the context type threaded through every port method.
type Context = context.Context
