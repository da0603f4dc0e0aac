package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/lox/internal/interp/evaluator"
	"github.com/cwbudde/lox/internal/loxconfig"
)

// TestMain lets go-snaps prune obsolete snapshots left behind by renamed or
// removed fixtures once the whole package's tests have run.
func TestMain(m *testing.M) {
	os.Exit(func() int {
		defer snaps.Clean(m)
		return m.Run()
	}())
}

// TestCLISnapshot runs runSource the way `lox run` does, over small
// fixture scripts on disk, and checks the combined stdout against a
// snapshot — CLI-level golden coverage alongside the internal packages'
// unit tests, the same go-snaps tool the teacher's own interpreter uses
// for its own larger fixture corpus.
func TestCLISnapshot(t *testing.T) {
	fixtures := []string{"hello", "error_missing_semicolon"}

	for _, name := range fixtures {
		name := name
		t.Run(name, func(t *testing.T) {
			path := filepath.Join("testdata", "cli", name+".lox")
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading fixture %s: %v", path, err)
			}

			var stdout bytes.Buffer
			interp := evaluator.New(&stdout)
			cfg := loxconfig.Default()
			cfg.NoColor = true

			runSource(interp, string(source), cfg, dumpFlags{})
			snaps.MatchSnapshot(t, stdout.String())
		})
	}
}
