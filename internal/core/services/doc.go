// Package services implements the driving port interfaces.
// Services contain the client-side result model and state machines
// and orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO and never touch the terminal;
// presentation layers observe them through typed events.
package services
