// Package ui provides the colour themes and lipgloss styles shared by the
// presentation layer. Themes honour the --no-color flag and the NO_COLOR
// environment variable.
package ui
