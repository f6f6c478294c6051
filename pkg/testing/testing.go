// Package testing prepares the process for package tests. Import it for its
// side effects:
//
//	import _ "github.com/chantelleNokue/smart-helmet-backend/pkg/testing"
//
// Tests then run from the repository root and write logs to a temp directory
// unless HELMET_LOG_DIR is already set.
package testing

import (
	"os"
	"path/filepath"
	"runtime"
)

// same key as common.EnvKeyHelmetLogDir; pkg/common tests import this package
const envKeyLogDir = "HELMET_LOG_DIR"

func init() {
	_, filename, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(filename), "..", "..")
	if err := os.Chdir(root); err != nil {
		panic(err)
	}

	if dir := os.Getenv(envKeyLogDir); dir == "" {
		if err := os.Setenv(envKeyLogDir, filepath.Join(os.TempDir(), "helmet-test-logs")); err != nil {
			panic(err)
		}
	}
}
