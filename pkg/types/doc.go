// Package types defines the Task entity, the Store interface, the
// tri-state patch type used for partial updates, and standard errors
// for the todos service.
package types
