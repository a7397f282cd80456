// Package file provides the TOML-backed configuration store.
//
// Settings live in ~/.qubrix/config.toml as nested tables and are exposed
// to the core through flattened dot-notation keys such as "server.timeout".
package file
