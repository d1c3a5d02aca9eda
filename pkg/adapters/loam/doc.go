// Package loam serves snippet documents from a Loam repository.
package loam
