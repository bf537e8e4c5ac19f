// Package redis forwards plan events to Redis pub/sub channels so other
// processes can follow changes to the plan. Each event type gets its own
// channel under a configurable prefix, e.g. "planner:events:subject.created".
package redis
