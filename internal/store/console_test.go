package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidemark-io/tidelog/internal/adapters/fs"
)

func consoleContents(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func TestOpenConsole_RotatesGenerations(t *testing.T) {
	dir := t.TempDir()
	medium := fs.NewMedium()

	for i, msg := range []string{"boot-1\n", "boot-2\n", "boot-3\n", "boot-4\n"} {
		stream, err := OpenConsole(medium, dir)
		if err != nil {
			t.Fatalf("OpenConsole %d: %v", i, err)
		}
		if _, err := stream.Write([]byte(msg)); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		stream.Close()
	}

	// Three generations retained: live file plus two historical ones.
	if got := consoleContents(t, dir, "console.log"); !strings.Contains(got, "boot-4") {
		t.Errorf("console.log = %q, want boot-4", got)
	}
	if got := consoleContents(t, dir, "console.log.1"); !strings.Contains(got, "boot-3") {
		t.Errorf("console.log.1 = %q, want boot-3", got)
	}
	if got := consoleContents(t, dir, "console.log.2"); !strings.Contains(got, "boot-2") {
		t.Errorf("console.log.2 = %q, want boot-2", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "console.log.3")); !os.IsNotExist(err) {
		t.Error("oldest generation should have been discarded")
	}
}

func TestOpenConsole_FreshDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	stream, err := OpenConsole(fs.NewMedium(), dir)
	if err != nil {
		t.Fatalf("OpenConsole: %v", err)
	}
	defer stream.Close()

	if _, err := stream.Write([]byte("hello\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
}
