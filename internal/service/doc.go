// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The service layer depends on domain entities and repository interfaces (from store),
// but never on specific infrastructure implementations. Services receive their
// dependencies through constructor injection.
//
// Task writes always keep the completed flag derived from the status: a
// request may set either one, and the service fills in the other before the
// store is called.
package service
