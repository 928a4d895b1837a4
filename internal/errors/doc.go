// Package apperrors defines the structured error types of fpcore and the
// process exit codes derived from them.
//
// Arithmetic in internal/bigint is total and never returns these errors;
// they surface at the edges: parsing user input, loading configuration and
// reporting a failed self-check property. All wrapping follows fmt.Errorf
// with %w so errors.Is and errors.As see through every layer.
package apperrors
