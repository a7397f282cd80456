// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - AnalysisClient: Sends a batch to the analysis endpoint
//   - FileSink: Stores the exported result artifact
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FileLoader: Resolves local paths into input files
//   - Dropzone: Watches a folder for dropped files
//   - URLOpener: Hands a URL to the system browser
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
