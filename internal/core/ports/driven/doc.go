// Package driven defines the interfaces the core consumes: hierarchy and
// configuration stores, the text-extraction service, the tabular upsert
// store, the workflow runtime signal contract, and application settings.
//
// Adapters under internal/adapters/driven implement these interfaces. The
// core holds no global state; collaborator handles are constructed once at
// process start and passed into the services.
package driven
