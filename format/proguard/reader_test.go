package proguard

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

const proguardSample = "# compiler: R8\n" +
	"pkg.Main -> a:\n" +
	"    int counter -> b\n" +
	"    java.lang.String[] names -> c\n" +
	"    1:4:void run(int,pkg.Main) -> d\n" +
	"    5:5:void pkg.Other.helper():12:12 -> d\n" +
	"    long size():7 -> e\n" +
	"pkg.Other -> f:\n"

func TestRead(t *testing.T) {
	rec := &visitortest.Recorder{}
	diags := diagnostic.NewCollector()

	require.NoError(t, Read(strings.NewReader(proguardSample), "named", "obf", rec, diags))

	want := []string{
		"header",
		"namespaces named obf",
		"content",
		"class pkg/Main",
		"dst Class 0 a",
		"enter Class",
		"field counter I",
		"dst Field 0 b",
		"enter Field",
		"field names [Ljava/lang/String;",
		"dst Field 0 c",
		"enter Field",
		"method run (ILpkg/Main;)V",
		"dst Method 0 d",
		"enter Method",
		"method size ()J",
		"dst Method 0 e",
		"enter Method",
		"class pkg/Other",
		"dst Class 0 f",
		"enter Class",
		"end",
	}
	if diff := cmp.Diff(want, rec.Calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, diags.Diagnostics)
}

func TestRead_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"class without arrow", "pkg.Main a:\n", 1},
		{"class without colon", "pkg.Main -> a\n", 1},
		{"member outside class", "    int x -> y\n", 1},
		{"member without arrow", "a -> b:\n    int x y\n", 2},
		{"member without name", "a -> b:\n    int -> y\n", 2},
		{"unbalanced parens", "a -> b:\n    void m)( -> y\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := diagnostic.NewCollector()

			require.NoError(t, Read(strings.NewReader(tt.input), "a", "b", tree.New(), diags))
			require.Len(t, diags.Errors(), 1, diags.String())

			d := diags.Errors()[0]
			assert.Equal(t, tt.line, d.Line)
		})
	}
}

func TestRead_PrunedClassSkipsMembers(t *testing.T) {
	rec := &visitortest.Recorder{Skip: map[visitor.ElementKind]bool{visitor.Class: true}}

	require.NoError(t, Read(strings.NewReader(proguardSample), "named", "obf", rec, diagnostic.NewCollector()))

	assert.Equal(t, []string{
		"header", "namespaces named obf", "content",
		"class pkg/Main", "class pkg/Other", "end",
	}, rec.Calls)
}

func TestWriter(t *testing.T) {
	mt := tree.New()
	diags := diagnostic.NewCollector()
	require.NoError(t, Read(strings.NewReader(proguardSample), "named", "obf", mt, diags))

	var buf bytes.Buffer

	w := NewWriter(&buf)
	require.NoError(t, mt.Accept(w))
	require.NoError(t, w.Close())

	want := "pkg.Main -> a:\n" +
		"    int counter -> b\n" +
		"    java.lang.String[] names -> c\n" +
		"    void run(int,pkg.Main) -> d\n" +
		"    long size() -> e\n" +
		"pkg.Other -> f:\n"
	assert.Equal(t, want, buf.String())

	back := tree.New()
	require.NoError(t, Read(strings.NewReader(buf.String()), "named", "obf", back, diags))
	assert.Empty(t, diags.Diagnostics)

	first := &visitortest.Recorder{}
	second := &visitortest.Recorder{}
	require.NoError(t, mt.Accept(first))
	require.NoError(t, back.Accept(second))

	if diff := cmp.Diff(first.Calls, second.Calls); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_FallsBackToSourceNames(t *testing.T) {
	mt := tree.New()
	require.NoError(t, mt.VisitNamespaces("named", []string{"obf"}))
	_, _ = mt.VisitClass("pkg/Main")
	_, _ = mt.VisitField("x", "")
	_, _ = mt.VisitMethod("m", "(Z)V")

	var buf bytes.Buffer

	w := NewWriter(&buf)
	require.NoError(t, mt.Accept(w))
	require.NoError(t, w.Close())

	assert.Equal(t, "pkg.Main -> pkg.Main:\n    void m(boolean) -> m\n", buf.String())
}
