package checker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "good.cq", "version 1.0\nqubits 2\nh q[0]\n")

	results, err := Run(context.Background(), []string{path}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, path, results[0].Path)
	assert.False(t, results[0].Failed())
	require.NotNil(t, results[0].Parse.Root)
	assert.Len(t, results[0].Parse.Root.Statements, 3)
}

func TestRunDirectoryIsOrdered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.cq", "qubits 2\n")
	writeFile(t, dir, "a.cq", "qubits 1\n")
	writeFile(t, dir, "sub/c.cq", "qubits 3\n")

	results, err := Run(context.Background(), []string{dir}, Options{Jobs: 4})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, filepath.Join(dir, "a.cq"), results[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.cq"), results[1].Path)
	assert.Equal(t, filepath.Join(dir, "sub", "c.cq"), results[2].Path)
}

func TestRunMixedOutcomes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.cq", "version 1.0\nqubits 2\n")
	writeFile(t, dir, "bad.cq", "version ;\n")

	results, err := Run(context.Background(), []string{dir}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Failed(), "bad.cq should fail")
	assert.NotEmpty(t, results[0].Parse.Errors)
	assert.False(t, results[1].Failed(), "good.cq should pass")

	sum := Summarize(results)
	assert.Equal(t, Summary{Files: 2, Failed: 1, Messages: 1}, sum)
}

func TestRunMissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.cq")

	results, err := Run(context.Background(), []string{missing}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.True(t, results[0].Failed())
	require.Len(t, results[0].Parse.Errors, 1)
	assert.Contains(t, results[0].Parse.Errors[0], "cannot open")
}

func TestRunExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.cq", "qubits 1\n")
	writeFile(t, dir, "y.qasm", "qubits 1\n")
	writeFile(t, dir, "z.txt", "not a circuit\n")

	results, err := Run(context.Background(), []string{dir}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(dir, "x.cq"), results[0].Path)

	results, err = Run(context.Background(), []string{dir}, Options{Extensions: []string{".cq", ".qasm"}})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRunExplicitFileSkipsFilter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "z.txt", "qubits 1\n")

	results, err := Run(context.Background(), []string{path}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Failed())
}

func TestRunDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "once.cq", "qubits 1\n")

	results, err := Run(context.Background(), []string{path, path, dir}, Options{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRunStableAcrossJobCounts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.cq", "version ;\n")
	writeFile(t, dir, "b.cq", "qubits 2\n")
	writeFile(t, dir, "c.cq", "map ;\n")
	writeFile(t, dir, "d.cq", "h q[0]\n")

	serial, err := Run(context.Background(), []string{dir}, Options{Jobs: 1})
	require.NoError(t, err)
	parallel, err := Run(context.Background(), []string{dir}, Options{Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Equal(t, serial[i].Path, parallel[i].Path)
		assert.Equal(t, serial[i].Parse.Errors, parallel[i].Parse.Errors)
	}
}

func TestRunMaxErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "noisy.cq", "@\n@\n@\n@\n@\n")

	results, err := Run(context.Background(), []string{dir}, Options{MaxErrors: 2})
	require.NoError(t, err)
	require.Len(t, results, 1)

	errs := results[0].Parse.Errors
	require.Len(t, errs, 3)
	assert.Contains(t, errs[2], "too many errors")
}

func TestRunCanceledContext(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.cq", "b.cq", "c.cq"} {
		writeFile(t, dir, name, "qubits 1\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []string{dir}, Options{Jobs: 1})
	assert.Error(t, err)
}
