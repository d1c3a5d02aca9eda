// Package mcp exposes the SAIL evaluator to agents over the Model Context Protocol.
//
// Tools are stateless: each call evaluates the given document on a fresh
// playground, optionally seeded with field values, and returns the tree,
// the rendered HTML and the dump.
package mcp
