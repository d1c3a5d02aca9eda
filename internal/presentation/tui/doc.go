// Package tui renders playground output for terminals: the banner, markdown
// reference pages and a text outline of a component tree.
package tui
