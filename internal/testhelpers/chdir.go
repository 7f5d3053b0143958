package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Chdir changes the working directory to dir for the duration of the test,
// restoring the previous directory on cleanup. It mirrors testing.T.Chdir
// (Go 1.24+) for older toolchains.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(dir) {
		if abs, err := os.Getwd(); err == nil {
			dir = abs
		}
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testhelpers.Chdir: restoring working directory: " + err.Error())
		}
	})
}
