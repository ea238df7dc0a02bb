package srg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapping-io/diagnostic"
	"mapping-io/tree"
	"mapping-io/visitor"
	"mapping-io/visitor/visitortest"
)

const srgSample = "PK: ./ net/minecraft\n" +
	"CL: a net/minecraft/Main\n" +
	"FD: a/b net/minecraft/Main/counter\n" +
	"MD: a/c (La;)V net/minecraft/Main/run (Lnet/minecraft/Main;)V\n" +
	"MD: d/e ()I net/minecraft/Other/size ()I\n"

func TestRead(t *testing.T) {
	rec := &visitortest.Recorder{}
	diags := diagnostic.NewCollector()

	require.NoError(t, Read(strings.NewReader(srgSample), "obf", "srg", rec, diags))

	want := []string{
		"header",
		"namespaces obf srg",
		"content",
		"class a",
		"dst Class 0 net/minecraft/Main",
		"enter Class",
		"field b",
		"dst Field 0 counter",
		"enter Field",
		"method c (La;)V",
		"dst Method 0 run",
		"dstdesc Method 0 (Lnet/minecraft/Main;)V",
		"enter Method",
		"class d",
		"dst Class 0 net/minecraft/Other",
		"enter Class",
		"method e ()I",
		"dst Method 0 size",
		"dstdesc Method 0 ()I",
		"enter Method",
		"end",
	}
	if diff := cmp.Diff(want, rec.Calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, diags.Diagnostics)
}

func TestRead_HeaderOnly(t *testing.T) {
	rec := &visitortest.Recorder{}
	diags := diagnostic.NewCollector()

	require.NoError(t, Read(strings.NewReader(""), "source", "target", rec, diags))

	assert.Equal(t, []string{"header", "namespaces source target", "content", "end"}, rec.Calls)
	assert.Empty(t, diags.Diagnostics)
}

func TestRead_Xsrg(t *testing.T) {
	input := "CL: a pkg/A\n" +
		"FD: a/b I pkg/A/size I\n" +
		"FD: a/c La; pkg/A/self Lpkg/A;\n"

	mt := tree.New()
	diags := diagnostic.NewCollector()

	require.NoError(t, Read(strings.NewReader(input), "source", "target", mt, diags))
	assert.Empty(t, diags.Diagnostics)

	c, ok := mt.Class("a")
	require.True(t, ok)

	f, ok := c.Field("c", "La;")
	require.True(t, ok)
	assert.Equal(t, "self", f.DstName(0))
	assert.Equal(t, "Lpkg/A;", f.DstDesc(0))
}

func TestRead_InvalidLines(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		severity diagnostic.Severity
		present  bool
	}{
		{"class without name", "CL:", diagnostic.SeverityError, false},
		{"class without dst", "CL: bad", diagnostic.SeverityWarning, true},
		{"field without src", "FD:", diagnostic.SeverityError, false},
		{"field without owner", "FD: bad", diagnostic.SeverityError, false},
		{"field with trailing slash", "FD: bad/", diagnostic.SeverityError, false},
		{"field without dst", "FD: bad/f", diagnostic.SeverityWarning, true},
		{"field with invalid dst", "FD: bad/f x", diagnostic.SeverityWarning, true},
		{"method without descs", "MD: bad/m", diagnostic.SeverityWarning, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := diagnostic.NewCollector()
			mt := tree.New()

			require.NoError(t, Read(strings.NewReader(tt.line+"\nCL: ok fine\n"), "source", "target", mt, diags))

			require.NotEmpty(t, diags.Diagnostics)
			assert.Equal(t, tt.severity, diags.Diagnostics[0].Severity, diags.String())
			assert.Equal(t, 1, diags.Diagnostics[0].Line)

			_, ok := mt.Class("ok")
			assert.True(t, ok)

			_, ok = mt.Class("bad")
			assert.Equal(t, tt.present, ok)
		})
	}
}

func TestRead_MultiplePasses(t *testing.T) {
	rec := &visitortest.Recorder{Want: visitor.NeedsMultiplePasses, Passes: 3}

	require.NoError(t, Read(strings.NewReader(srgSample), "obf", "srg", rec, nil))

	assert.Equal(t, 3, rec.Pass())
	assert.Len(t, rec.Calls, 3*21)
	assert.Equal(t, rec.Calls[:21], rec.Calls[42:])
}

func TestWriter_RoundTrip(t *testing.T) {
	mt := tree.New()
	require.NoError(t, Read(strings.NewReader(srgSample), "obf", "srg", mt, nil))

	var buf bytes.Buffer

	w := NewWriter(&buf, false)
	require.NoError(t, mt.Accept(w))
	require.NoError(t, w.Close())

	again := tree.New()
	diags := diagnostic.NewCollector()
	require.NoError(t, Read(&buf, "obf", "srg", again, diags))
	assert.Empty(t, diags.Diagnostics)

	c, ok := again.Class("a")
	require.True(t, ok)
	assert.Equal(t, "net/minecraft/Main", c.DstName(0))

	m, ok := c.Method("c", "(La;)V")
	require.True(t, ok)
	assert.Equal(t, "run", m.DstName(0))
	assert.Equal(t, "(Lnet/minecraft/Main;)V", m.DstDesc(0))

	f, ok := c.Field("b", "")
	require.True(t, ok)
	assert.Equal(t, "counter", f.DstName(0))
}

func TestWriter_XsrgOutput(t *testing.T) {
	input := "CL: a pkg/A\n" +
		"FD: a/b I pkg/A/size I\n" +
		"MD: a/c ()La; pkg/A/get ()Lpkg/A;\n"

	mt := tree.New()
	require.NoError(t, Read(strings.NewReader(input), "source", "target", mt, nil))

	var buf bytes.Buffer

	w := NewWriter(&buf, true)
	require.NoError(t, mt.Accept(w))
	require.NoError(t, w.Close())

	assert.Equal(t, input, buf.String())
}

func TestWriter_DerivesDescriptors(t *testing.T) {
	input := "CL: a pkg/A\nFD: a/b pkg/A/self\n"

	mt := tree.New()
	require.NoError(t, Read(strings.NewReader(input), "source", "target", mt, nil))

	c, _ := mt.Class("a")
	f, _ := c.Field("b", "")
	f.SrcDesc = "La;"

	var buf bytes.Buffer

	w := NewWriter(&buf, true)
	require.NoError(t, mt.Accept(w))
	require.NoError(t, w.Close())

	assert.Equal(t, "CL: a pkg/A\nFD: a/b La; pkg/A/self Lpkg/A;\n", buf.String())
}
