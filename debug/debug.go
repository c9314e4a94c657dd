//go:build debug

// Package debug reports whether the binary was built with the debug tag.
package debug

const Debug = true
