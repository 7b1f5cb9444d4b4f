package pmx_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.followtheprocess.codes/pmx/internal/pmx"
	"go.followtheprocess.codes/test"
)

// newApp returns an [pmx.App] writing to the returned buffers.
func newApp(t *testing.T) (app pmx.App, stdout, stderr *bytes.Buffer) {
	t.Helper()

	stdout = &bytes.Buffer{}
	stderr = &bytes.Buffer{}

	return pmx.New(false, "test", strings.NewReader(""), stdout, stderr), stdout, stderr
}

// workspace copies every file in testdata/<name> into a fresh temporary directory
// and returns its path, so conversions never write into testdata.
func workspace(t *testing.T, name string) string {
	t.Helper()

	dir := t.TempDir()
	src := filepath.Join("testdata", name)

	entries, err := os.ReadDir(src)
	test.Ok(t, err)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		copyFile(t, filepath.Join(src, entry.Name()), filepath.Join(dir, entry.Name()))
	}

	return dir
}

func copyFile(t *testing.T, from, to string) {
	t.Helper()

	in, err := os.Open(from)
	test.Ok(t, err)
	defer in.Close()

	out, err := os.Create(to)
	test.Ok(t, err)
	defer out.Close()

	_, err = io.Copy(out, in)
	test.Ok(t, err)
}
