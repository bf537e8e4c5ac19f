// Package memory implements the store interfaces on top of in-process maps.
//
// It is the default backend and the reference behaviour for the planner.
// All access is serialised by one mutex. A transaction works on a deep copy
// of the state which replaces the live state only when the unit of work
// returns nil, so a failed command leaves nothing behind.
package memory
