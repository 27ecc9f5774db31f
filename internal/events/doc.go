// Package events publishes task lifecycle changes to in-process handlers.
//
// The task service emits a TaskEvent after every successful write. Handlers
// registered on the emitter receive each event in registration order; the
// audit handler records them in the structured log.
package events
