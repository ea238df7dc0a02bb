package writer

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapping-io/format"
	"mapping-io/tree"
	"mapping-io/visitor"
)

func sampleTree(t *testing.T) *tree.Tree {
	t.Helper()

	mt := tree.New()
	require.NoError(t, mt.VisitNamespaces("obf", []string{"named"}))

	_, _ = mt.VisitClass("a")
	require.NoError(t, mt.VisitDstName(visitor.Class, 0, "pkg/Main"))
	_, _ = mt.VisitField("b", "I")
	require.NoError(t, mt.VisitDstName(visitor.Field, 0, "counter"))

	return mt
}

func TestNew(t *testing.T) {
	mt := sampleTree(t)

	for _, f := range format.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer

			w, err := New(&buf, f)
			if f.IsDirectory() {
				assert.ErrorIs(t, err, ErrUnsupported)

				return
			}

			require.NoError(t, err)
			require.NoError(t, mt.Accept(w))
			require.NoError(t, w.Close())
			assert.NotEmpty(t, buf.String())
		})
	}

	_, err := New(&bytes.Buffer{}, format.Unknown)
	assert.ErrorIs(t, err, format.ErrUnknownFormat)
}

func TestNewDir(t *testing.T) {
	fsys := afero.NewMemMapFs()

	w, err := NewDir(fsys, "out", format.EnigmaDir)
	require.NoError(t, err)
	require.NoError(t, sampleTree(t).Accept(w))
	require.NoError(t, w.Close())

	data, err := afero.ReadFile(fsys, "out/pkg/Main.mapping")
	require.NoError(t, err)
	assert.Equal(t, "CLASS a pkg/Main\n\tFIELD b counter I\n", string(data))

	_, err = NewDir(fsys, "out", format.Tiny2Dir)
	assert.ErrorIs(t, err, ErrUnsupported)
}
