// Package tui renders the self-check as an interactive terminal dashboard.
// It is selected with the -tui flag of the check command and drives a
// bubbletea program from the runner's progress callback.
package tui
