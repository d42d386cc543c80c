// Package registry holds the descriptor sets of the running application.
//
// The Registry is populated exactly once during startup from the attribute
// schema, one descriptor set per component kind, and then validated. After a
// successful validation the registry is frozen: it is only read from, so it
// can be shared with the inspector window and the report writers without
// locking.
package registry
