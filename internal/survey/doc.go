// Package survey holds the trip survey session model and the navigator that
// sequences the wizard screens. Reduce is a pure transition function over
// SessionState; Navigator wraps it, mints trip identifiers, and records each
// decision in the journey log.
package survey
