// Package render turns SAIL trees into HTML element trees.
//
// Every node kind maps to a small fixed fragment: form layouts become a div
// with an optional h2 heading, text fields and dropdowns a labelled control,
// buttons a submit action. Controls bound to state carry the
// data-sail-bind attribute naming their key, so any host that can deliver
// change events back to a session can drive the playground.
package render
