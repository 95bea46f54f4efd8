// Package ui provides theme and color support for the calculator's output
// surfaces. It defines ANSI color schemes for the CLI and lipgloss palettes
// for the TUI dashboard, with NO_COLOR and --no-color handling in one place.
//
// Packages that print colored output depend on this package rather than on
// escape codes directly, so a single InitTheme call switches the whole
// application between dark, light, and monochrome rendering.
package ui
