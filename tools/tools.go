//go:build tools

// Package tools pins tool dependencies in go.mod so they can be installed
// with 'go install' at the tracked version.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
