// Package service contains the planner's use cases. Each command runs as one
// store transaction: the service loads what it needs, applies the domain
// rules, writes, and after the commit publishes a plan event.
//
// Services depend on the store interfaces only, never on a concrete backend.
// Errors returned to callers are either sentinels from this package, domain
// validation or invariant errors, or a *ServiceError for anything
// unexpected.
package service
