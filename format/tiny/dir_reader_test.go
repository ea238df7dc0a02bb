package tiny

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapping-io/diagnostic"
	"mapping-io/visitor/visitortest"
)

func writeFiles(t *testing.T, fsys afero.Fs, files [][2]string) {
	t.Helper()

	for _, f := range files {
		require.NoError(t, afero.WriteFile(fsys, f[0], []byte(f[1]), 0o644))
	}
}

func TestReadV2Dir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, [][2]string{
		{"/m/b.tiny", "tiny\t2\t0\tsource\ttarget\nc\tb\tB\n"},
		{"/m/a.tiny", "tiny\t2\t0\tsource\ttarget\n\tk\tv\nc\ta\tA\n"},
		{"/m/skip/c.tiny", "tiny\t2\t0\tsource\ttarget\nc\tc\tC\n"},
		{"/m/notes.txt", "ignored"},
		{"/m/.gitignore", "skip/\n"},
	})

	rec := &visitortest.Recorder{}
	diags := diagnostic.NewCollector()

	require.NoError(t, ReadV2Dir(fsys, "/m", rec, diags))

	assert.Equal(t, []string{
		"header",
		"namespaces source target",
		"metadata k=v",
		"content",
		"class a",
		"dst Class 0 A",
		"enter Class",
		"class b",
		"dst Class 0 B",
		"enter Class",
		"end",
	}, rec.Calls)
	assert.Empty(t, diags.Diagnostics)
}

func TestReadV2Dir_NamespaceMismatch(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, [][2]string{
		{"/m/a.tiny", "tiny\t2\t0\tsource\ttarget\n"},
		{"/m/b.tiny", "tiny\t2\t0\tsource\tother\n"},
	})

	err := ReadV2Dir(fsys, "/m", &visitortest.Recorder{}, nil)
	require.ErrorIs(t, err, ErrNamespaceMismatch)

	src, dst, err := DirNamespaces(fsys, "/m", false)
	require.NoError(t, err)
	assert.Equal(t, "source", src)
	assert.Equal(t, []string{"target"}, dst)

	_, _, err = DirNamespaces(fsys, "/m", true)
	require.ErrorIs(t, err, ErrNamespaceMismatch)
}
