// Package cli implements the terminal front ends of the playground: one-shot
// evaluation, file watching, the interactive REPL and the HTTP server runner.
package cli
