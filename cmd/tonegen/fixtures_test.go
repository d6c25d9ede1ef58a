package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-tonegen/internal/fixture"
)

func TestFixturesCommand_WritesFullSet(t *testing.T) {
	dir := t.TempDir()

	var stdout bytes.Buffer
	root := NewRootCmd()
	root.SetArgs([]string{"fixtures", "--dir", dir})
	root.SetOut(&stdout)

	if err := root.Execute(); err != nil {
		t.Fatalf("fixtures command failed: %v", err)
	}

	for _, fx := range fixture.DefaultSet() {
		path := filepath.Join(dir, fx.Name)
		st, err := os.Stat(path)
		if err != nil {
			t.Errorf("expected fixture %s: %v", fx.Name, err)
			continue
		}
		if st.Size() == 0 {
			t.Errorf("fixture %s is empty", fx.Name)
		}
		if !strings.Contains(stdout.String(), fx.Name) {
			t.Errorf("expected report line for %s", fx.Name)
		}
	}

	if !strings.Contains(stdout.String(), "Done.") {
		t.Error("expected closing summary line")
	}
}
