package enigma

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapping-io/diagnostic"
	"mapping-io/tree"
	"mapping-io/visitor"
	"mapping-io/visitor/visitortest"
)

const enigmaFlat = "CLASS a pkg/Main\n" +
	"\tCOMMENT Main class\n" +
	"\tFIELD b counter I\n" +
	"\tFIELD f Ljava/lang/String;\n" +
	"\tMETHOD c run (I)V\n" +
	"\t\tCOMMENT Runs\n" +
	"\t\tCOMMENT twice\n" +
	"\t\tARG 1 times\n" +
	"CLASS a$d pkg/Main$Inner\n" +
	"\tFIELD e value J\n" +
	"CLASS g\n"

func decode(t *testing.T, input string) *tree.Tree {
	t.Helper()

	mt := tree.New()
	diags := diagnostic.NewCollector()

	require.NoError(t, Read(strings.NewReader(input), "obf", "named", mt, diags))
	require.Empty(t, diags.Diagnostics, diags.String())

	return mt
}

func calls(t *testing.T, mt *tree.Tree) []string {
	t.Helper()

	rec := &visitortest.Recorder{}
	require.NoError(t, mt.Accept(rec))

	return rec.Calls
}

func TestWriter(t *testing.T) {
	mt := decode(t, enigmaSample)

	var buf bytes.Buffer

	w := NewWriter(&buf)
	require.NoError(t, mt.Accept(w))
	require.NoError(t, w.Close())

	assert.Equal(t, enigmaFlat, buf.String())

	if diff := cmp.Diff(calls(t, mt), calls(t, decode(t, buf.String()))); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_SkipsVariablesAndUnindexedArgs(t *testing.T) {
	mt := tree.New()

	require.NoError(t, mt.VisitNamespaces("obf", []string{"named"}))
	_, _ = mt.VisitClass("a")
	_, _ = mt.VisitMethod("m", "()V")
	_, _ = mt.VisitMethodArg(0, -1, "p")
	require.NoError(t, mt.VisitDstName(visitor.MethodArg, 0, "param"))
	_, _ = mt.VisitMethodVar(-1, 2, 0, -1, "v")
	require.NoError(t, mt.VisitDstName(visitor.MethodVar, 0, "local"))

	var buf bytes.Buffer

	w := NewWriter(&buf)
	require.NoError(t, mt.Accept(w))
	require.NoError(t, w.Close())

	assert.Equal(t, "CLASS a\n\tMETHOD m ()V\n", buf.String())
}

func TestDirWriter(t *testing.T) {
	mt := decode(t, enigmaSample)
	fsys := afero.NewMemMapFs()

	w := NewDirWriter(fsys, "out")
	require.NoError(t, mt.Accept(w))
	require.NoError(t, w.Close())

	main, err := afero.ReadFile(fsys, "out/pkg/Main.mapping")
	require.NoError(t, err)
	assert.Equal(t, "CLASS a pkg/Main\n"+
		"\tCOMMENT Main class\n"+
		"\tFIELD b counter I\n"+
		"\tFIELD f Ljava/lang/String;\n"+
		"\tMETHOD c run (I)V\n"+
		"\t\tCOMMENT Runs\n"+
		"\t\tCOMMENT twice\n"+
		"\t\tARG 1 times\n"+
		"CLASS a$d pkg/Main$Inner\n"+
		"\tFIELD e value J\n", string(main))

	g, err := afero.ReadFile(fsys, "out/g.mapping")
	require.NoError(t, err)
	assert.Equal(t, "CLASS g\n", string(g))

	back := tree.New()
	diags := diagnostic.NewCollector()
	require.NoError(t, ReadDir(fsys, "out", "obf", "named", back, diags))
	assert.Empty(t, diags.Diagnostics)

	// Files are read in path order, so g precedes the pkg directory.
	_, ok := back.Class("g")
	assert.True(t, ok)
	assert.Len(t, back.Classes, 3)

	c, ok := back.Class("a$d")
	require.True(t, ok)
	assert.Equal(t, "pkg/Main$Inner", c.DstName(0))
}

func TestReadDir_Empty(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("maps", 0o755))

	rec := &visitortest.Recorder{}
	require.NoError(t, ReadDir(fsys, "maps", "obf", "named", rec, diagnostic.NewCollector()))

	assert.Equal(t, []string{"header", "namespaces obf named", "content", "end"}, rec.Calls)
}
