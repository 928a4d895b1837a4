// Package logging provides the structured logging interface used by fpcore.
// Components depend on [Logger]; the default backend is zerolog, and a
// standard-library adapter exists for embedding fpcore in programs that
// already route through the log package.
package logging
