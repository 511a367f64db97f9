package artifact

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBundle() *Bundle {
	b := NewBundle("schema")
	b.Add("database/schema.sql", "CREATE TABLE a;\n")
	b.Add("README.md", "# hi")
	return b
}

func TestWriteDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteDir(sampleBundle(), dir))

	content, err := os.ReadFile(filepath.Join(dir, "database", "schema.sql"))
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE a;\n", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# hi", string(content))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	filename := filepath.Join(dir, "out.txt")
	require.NoError(t, writeFile(filename, "content"))
	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))

	// a directory cannot be opened for writing
	assert.Error(t, writeFile(dir, "content"))
}

func TestWriteDir_RejectsEscapingPaths(t *testing.T) {
	for _, p := range []string{"../evil.txt", "/etc/passwd", "a/../../b"} {
		b := NewBundle("x")
		b.Add(p, "nope")
		assert.Error(t, WriteDir(b, t.TempDir()), p)
	}
}

func TestWriteZip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteZip(sampleBundle(), &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "database/schema.sql", zr.File[0].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE a;\n", string(data))
}

func TestWriteStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStream(sampleBundle(), &buf))
	assert.Equal(t, "==> database/schema.sql <==\nCREATE TABLE a;\n\n==> README.md <==\n# hi\n", buf.String())

	single := NewBundle("x")
	single.Add("only.txt", "body")
	buf.Reset()
	require.NoError(t, WriteStream(single, &buf))
	assert.Equal(t, "body", buf.String())
}

func TestMerge(t *testing.T) {
	a := NewBundle("mobile")
	a.Add("pubspec.yaml", "name: x")
	b := NewBundle("backend")
	b.Add("pom.xml", "<project/>")

	m := Merge("all", true, a, nil, b)

	assert.Equal(t, []string{"backend/pom.xml", "mobile/pubspec.yaml"}, m.Paths())
}
