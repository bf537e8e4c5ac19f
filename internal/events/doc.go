// Package events carries notifications about committed plan changes.
//
// Services publish a PlanEvent after a command has been applied; handlers
// registered on an EventEmitter react to it (the server registers an audit
// log). Handlers never take part in the command itself, so a failing
// handler cannot undo a change.
package events
