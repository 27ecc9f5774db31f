// Package domain contains the core business entities, value objects, and
// domain logic of the application: tasks, their status lifecycle, and the
// users they can be assigned to. It is independent of any specific storage
// or delivery mechanism.
package domain
