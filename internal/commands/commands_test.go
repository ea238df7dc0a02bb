package commands

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kingpin/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tiny2Sample = "tiny\t2\t0\tobf\tnamed\n" +
	"c\ta\tpkg/Main\n" +
	"\tc\tEntry point\n" +
	"\tf\tI\tb\tcounter\n" +
	"\tm\t(I)V\tc\trun\n" +
	"\t\tp\t1\t\ttimes\n"

type harness struct {
	fsys afero.Fs
	out  *bytes.Buffer
	logs *bytes.Buffer
}

func newHarness(t *testing.T, files map[string]string) *harness {
	t.Helper()

	h := &harness{fsys: afero.NewMemMapFs(), out: &bytes.Buffer{}, logs: &bytes.Buffer{}}

	for name, content := range files {
		require.NoError(t, afero.WriteFile(h.fsys, name, []byte(content), 0o644))
	}

	return h
}

// run parses args with a freshly registered application.
func (h *harness) run(args ...string) error {
	g := &Globals{FS: h.fsys, Out: h.out, Err: h.logs}

	app := kingpin.New("mappingio", "test")
	app.Terminate(nil)
	g.Register(app)

	(&DetectCommand{}).Register(app, g)
	(&NamespacesCommand{}).Register(app, g)
	(&CheckCommand{}).Register(app, g)
	(&TreeCommand{}).Register(app, g)
	(&ConvertCommand{}).Register(app, g)

	_, err := app.Parse(args)

	return err
}

func TestDetect(t *testing.T) {
	h := newHarness(t, map[string]string{"m.tiny": tiny2Sample, "junk.txt": "nothing"})

	require.NoError(t, h.run("detect", "m.tiny"))
	assert.Equal(t, "Tiny v2 file (tinyv2)\n", h.out.String())

	assert.Error(t, h.run("detect", "junk.txt"))
}

func TestNamespaces(t *testing.T) {
	h := newHarness(t, map[string]string{"m.tiny": tiny2Sample})

	require.NoError(t, h.run("namespaces", "m.tiny"))
	assert.Equal(t, "source: obf\ndestination 0: named\n", h.out.String())
}

func TestCheck(t *testing.T) {
	h := newHarness(t, map[string]string{
		"ok.tiny":  tiny2Sample,
		"bad.tiny": "tiny\t2\t0\tobf\tnamed\nc\n\tf\tI\n",
	})

	require.NoError(t, h.run("check", "ok.tiny"))
	assert.Contains(t, h.out.String(), "1 classes, 1 fields, 1 methods, 1 args, 0 vars, 1 comments; 0 errors, 0 warnings")

	h.out.Reset()

	err := h.run("check", "bad.tiny")
	require.ErrorIs(t, err, ErrInvalidMapping)
	assert.Contains(t, h.out.String(), "bad.tiny:2:")
	assert.Contains(t, h.logs.String(), "level=error")
}

func TestCheck_FailAt(t *testing.T) {
	h := newHarness(t, map[string]string{"bad.tiny": "tiny\t2\t0\tobf\tnamed\nc\na\nc\n"})

	err := h.run("check", "--fail-at=error", "bad.tiny")
	require.ErrorIs(t, err, ErrInvalidMapping)
	assert.Contains(t, h.out.String(), "; 1 errors")
	assert.Equal(t, 1, bytes.Count(h.out.Bytes(), []byte("bad.tiny:")))
}

func TestTree(t *testing.T) {
	h := newHarness(t, map[string]string{"m.tiny": tiny2Sample})

	require.NoError(t, h.run("tree", "m.tiny"))

	out := h.out.String()
	assert.Contains(t, out, "obf -> named")
	assert.Contains(t, out, "class a => pkg/Main")
	assert.Contains(t, out, "field b I => counter")
	assert.Contains(t, out, "arg -1/1  => times")

	h.out.Reset()

	require.NoError(t, h.run("tree", "--output=yaml", "m.tiny"))
	assert.Contains(t, h.out.String(), "src_namespace: obf")
	assert.Contains(t, h.out.String(), "comment: Entry point")
}

func TestConvert(t *testing.T) {
	h := newHarness(t, map[string]string{
		"m.tiny":      tiny2Sample,
		"config.yaml": "rename:\n  obf: official\n",
	})

	require.NoError(t, h.run("--config.file=config.yaml", "convert", "--to=tsrg2", "m.tiny", "out.tsrg"))

	data, err := afero.ReadFile(h.fsys, "out.tsrg")
	require.NoError(t, err)
	assert.Equal(t, "tsrg2 official named\n"+
		"a pkg/Main\n"+
		"\tb I counter\n"+
		"\tc (I)V run\n"+
		"\t\t1  times\n", string(data))

	require.NoError(t, h.run("convert", "--to=enigma-dir", "m.tiny", "enigma"))

	data, err = afero.ReadFile(h.fsys, "enigma/pkg/Main.mapping")
	require.NoError(t, err)
	assert.Contains(t, string(data), "CLASS a pkg/Main\n")

	assert.Error(t, h.run("convert", "--to=nope", "m.tiny", "x"))
}
