// Package testutil provides testing utilities for bfvm tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Canonical programs printing "Hello World!\n".
const (
	HelloWorldSingleLoop  = "++++++++++[>+++++++>++++++++++>+++>+<<<<-]>++.>+.+++++++..+++.>++.<<+++++++++++++++.>.+++.------.--------.>+.>."
	HelloWorldNestedLoops = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."
)

// Dollar prints "$" (6 x 6 = 0x24).
const Dollar = "++++++[>++++++<-]>."

// TempFile creates a temporary file with the given content and extension.
// The file is automatically cleaned up when the test finishes.
func TempFile(t *testing.T, content, ext string) string {
	t.Helper()
	return TempBytes(t, []byte(content), ext)
}

// TempBytes creates a temporary file with binary content.
func TempBytes(t *testing.T, content []byte, ext string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test"+ext)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// PixelTableCSV returns a pixel table encoding "+." in one row with the
// direct palette (green, blue).
func PixelTableCSV() string {
	return `x,y,r,g,b
0,0,0,255,0
1,0,0,0,255`
}

// AssertStringEqual checks if two strings are equal.
func AssertStringEqual(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("expected %q, got %q", expected, actual)
	}
}

// AssertIntEqual checks if two ints are equal.
func AssertIntEqual(t *testing.T, expected, actual int) {
	t.Helper()
	if expected != actual {
		t.Errorf("expected %d, got %d", expected, actual)
	}
}
