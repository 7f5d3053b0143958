// Package testhelpers holds helpers shared by tests across packages.
package testhelpers

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// JSONGoldie creates a goldie instance for JSON output. Fixtures live in the
// calling package's testdata directory as <TestName>.gold.json.
func JSONGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.json"))
}

// TextGoldie creates a goldie instance for plain-text output.
func TextGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.txt"))
}

// DotGoldie creates a goldie instance for Graphviz DOT output.
func DotGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.dot"))
}
