// Package viz renders evaluation results for the terminal.
//
// Tables and panels are styled with lipgloss; energy curves are drawn with
// asciigraph. Nothing here writes to stdout directly: every function
// returns a string.
package viz
