package tsrg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapping-io/diagnostic"
	"mapping-io/format"
	"mapping-io/tree"
	"mapping-io/visitor/visitortest"
)

func encode(t *testing.T, mt *tree.Tree, f format.Format) string {
	t.Helper()

	var buf bytes.Buffer

	w, err := NewWriter(&buf, f)
	require.NoError(t, err)
	require.NoError(t, mt.Accept(w))
	require.NoError(t, w.Close())

	return buf.String()
}

func decode(t *testing.T, input string) *tree.Tree {
	t.Helper()

	mt := tree.New()
	diags := diagnostic.NewCollector()

	require.NoError(t, Read(strings.NewReader(input), "obf", "srg", mt, diags))
	require.Empty(t, diags.Diagnostics, diags.String())

	return mt
}

func calls(t *testing.T, mt *tree.Tree) []string {
	t.Helper()

	rec := &visitortest.Recorder{}
	require.NoError(t, mt.Accept(rec))

	return rec.Calls
}

func TestWriter_Tsrg(t *testing.T) {
	mt := decode(t, tsrgSample)

	out := encode(t, mt, format.TsrgFile)
	assert.Equal(t, tsrgSample, out)

	if diff := cmp.Diff(calls(t, mt), calls(t, decode(t, out))); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_Tsrg2(t *testing.T) {
	mt := decode(t, tsrg2Sample)

	out := encode(t, mt, format.Tsrg2File)
	assert.Equal(t, "tsrg2 obf srg mcp\n"+
		"a C_1 pkg/Main\n"+
		"\tb f_1 counter\n"+
		"\tc I f_2 size\n"+
		"\td (I)V m_1 run\n"+
		"\t\t0 o p_1 times\n", out)

	if diff := cmp.Diff(calls(t, mt), calls(t, decode(t, out))); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_Csrg(t *testing.T) {
	mt := decode(t, tsrgSample)

	out := encode(t, mt, format.CsrgFile)
	assert.Equal(t, "a pkg/Main\n"+
		"a b counter\n"+
		"a c (I)V run\n"+
		"d pkg/Other\n", out)

	if diff := cmp.Diff(calls(t, mt), calls(t, decode(t, out))); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_FallsBackToSourceName(t *testing.T) {
	mt := decode(t, "a b\n\tc (I)V d\n")

	c, _ := mt.Class("a")
	c.DstNames = nil

	assert.Equal(t, "a a\n\tc (I)V d\n", encode(t, mt, format.TsrgFile))
}

func TestNewWriter_RejectsOtherFormats(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, format.SrgFile)
	require.ErrorIs(t, err, format.ErrUnknownFormat)
}
