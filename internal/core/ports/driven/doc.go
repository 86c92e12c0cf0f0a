// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ContentStore: Records, media and metadata of the host content store
//   - RecordLifecycle: Pre-delete hook registration and record removal
//   - IntegrationChecker: Which builder integrations are enabled
//   - Extractor: Format-specific media reference extraction
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - EventLog: Records each reclaim report for later review
//   - ContentWriter: Seeds records and media from an export
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
