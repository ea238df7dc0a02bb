package tree

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapping-io/visitor"
	"mapping-io/visitor/visitortest"
)

// build fills a tree through the visitor interface.
func build(t *testing.T) *Tree {
	t.Helper()

	tr := New()

	_, err := tr.VisitHeader()
	require.NoError(t, err)
	require.NoError(t, tr.VisitNamespaces("obf", []string{"named"}))
	require.NoError(t, tr.VisitMetadata("escaped-names", ""))
	require.NoError(t, tr.VisitMetadata("escaped-names", ""))

	_, err = tr.VisitContent()
	require.NoError(t, err)

	_, err = tr.VisitPackage("a")
	require.NoError(t, err)
	require.NoError(t, tr.VisitDstName(visitor.Package, 0, "pkg"))

	_, err = tr.VisitClass("a/A")
	require.NoError(t, err)
	require.NoError(t, tr.VisitDstName(visitor.Class, 0, "pkg/Main"))
	require.NoError(t, tr.VisitComment(visitor.Class, "entry point"))

	_, err = tr.VisitClass("b")
	require.NoError(t, err)
	require.NoError(t, tr.VisitDstName(visitor.Class, 0, "Helper"))

	_, err = tr.VisitMethod("m", "(La/A;Lc;)Lb;")
	require.NoError(t, err)
	require.NoError(t, tr.VisitDstName(visitor.Method, 0, "run"))

	_, err = tr.VisitMethodArg(0, 1, "")
	require.NoError(t, err)
	require.NoError(t, tr.VisitDstName(visitor.MethodArg, 0, "main"))

	_, err = tr.VisitMethodVar(-1, 3, 4, 9, "")
	require.NoError(t, err)
	require.NoError(t, tr.VisitDstName(visitor.MethodVar, 0, "tmp"))

	_, err = tr.VisitField("f", "")
	require.NoError(t, err)

	// re-open a class and a field; the desc fills in the missing one
	_, err = tr.VisitClass("a/A")
	require.NoError(t, err)
	_, err = tr.VisitField("g", "I")
	require.NoError(t, err)

	_, err = tr.VisitClass("b")
	require.NoError(t, err)
	_, err = tr.VisitField("f", "J")
	require.NoError(t, err)
	require.NoError(t, tr.VisitDstName(visitor.Field, 0, "value"))

	_, err = tr.VisitEnd()
	require.NoError(t, err)

	return tr
}

func TestTree_Build(t *testing.T) {
	tr := build(t)

	assert.Equal(t, "obf", tr.SrcNamespace)
	assert.Equal(t, []string{"named"}, tr.DstNamespaces)
	assert.Equal(t, []Metadata{{Key: "escaped-names"}}, tr.Metadata)

	a, ok := tr.Class("a/A")
	require.True(t, ok)
	assert.Equal(t, "pkg/Main", a.DstName(0))
	assert.Equal(t, "", a.DstName(1))
	assert.Equal(t, "entry point", a.Comment)
	assert.Len(t, a.Fields, 1)

	b, ok := tr.Class("b")
	require.True(t, ok)

	want := &Class{
		Entry: Entry{SrcName: "b", DstNames: []string{"Helper"}},
		Fields: []*Member{
			{Entry: Entry{SrcName: "f", DstNames: []string{"value"}}, SrcDesc: "J"},
		},
		Methods: []*Member{{
			Entry:   Entry{SrcName: "m", DstNames: []string{"run"}},
			SrcDesc: "(La/A;Lc;)Lb;",
			Args: []*Arg{
				{Entry: Entry{DstNames: []string{"main"}}, ArgPosition: 0, LvIndex: 1},
			},
			Vars: []*Var{
				{Entry: Entry{DstNames: []string{"tmp"}}, LvtRowIndex: -1, LvIndex: 3, StartOpIdx: 4, EndOpIdx: 9},
			},
		}},
	}

	if diff := cmp.Diff(want, b, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("class b mismatch (-want +got):\n%s\n%s", diff, spew.Sdump(b))
	}

	f, ok := b.Field("f", "")
	require.True(t, ok)
	assert.Equal(t, "J", f.SrcDesc)

	_, ok = b.Method("m", "()V")
	assert.False(t, ok)

	_, ok = tr.Package("a")
	assert.True(t, ok)
}

func TestTree_Stats(t *testing.T) {
	assert.Equal(t, Stats{
		Packages: 1,
		Classes:  2,
		Fields:   2,
		Methods:  1,
		Args:     1,
		Vars:     1,
		Comments: 1,
	}, build(t).Stats())
}

func TestTree_MergeArgs(t *testing.T) {
	tr := New()

	_, err := tr.VisitClass("a")
	require.NoError(t, err)
	_, err = tr.VisitMethod("m", "(I)V")
	require.NoError(t, err)

	_, err = tr.VisitMethodArg(-1, 1, "")
	require.NoError(t, err)
	_, err = tr.VisitMethodArg(0, 1, "x")
	require.NoError(t, err)

	m, ok := mustClass(t, tr, "a").Method("m", "(I)V")
	require.True(t, ok)
	require.Len(t, m.Args, 1)
	assert.Equal(t, Arg{Entry: Entry{SrcName: "x"}, ArgPosition: 0, LvIndex: 1}, *m.Args[0])
}

func TestTree_Errors(t *testing.T) {
	tr := New()

	_, err := tr.VisitField("f", "I")
	require.Error(t, err)

	_, err = tr.VisitMethodArg(0, 0, "")
	require.Error(t, err)

	require.Error(t, tr.VisitDstName(visitor.Class, 0, "x"))
	require.Error(t, tr.VisitDstName(visitor.Class, -1, "x"))
}

func TestTree_Accept(t *testing.T) {
	rec := &visitortest.Recorder{}

	require.NoError(t, build(t).Accept(rec))
	assert.Equal(t, []string{
		"header",
		"namespaces obf named",
		"metadata escaped-names=",
		"content",
		"package a",
		"dst Package 0 pkg",
		"enter Package",
		"class a/A",
		"dst Class 0 pkg/Main",
		"enter Class",
		"comment Class entry point",
		"field g I",
		"enter Field",
		"class b",
		"dst Class 0 Helper",
		"enter Class",
		"field f J",
		"dst Field 0 value",
		"enter Field",
		"method m (La/A;Lc;)Lb;",
		"dst Method 0 run",
		"enter Method",
		"arg 0 1",
		"dst MethodArg 0 main",
		"enter MethodArg",
		"var -1 3 4 9",
		"dst MethodVar 0 tmp",
		"enter MethodVar",
		"end",
	}, rec.Calls)
}

func TestTree_AcceptDerivesDstDescs(t *testing.T) {
	rec := &visitortest.Recorder{
		Want: visitor.NeedsDstMethodDesc,
		Skip: map[visitor.ElementKind]bool{visitor.MethodArg: true, visitor.MethodVar: true},
	}

	require.NoError(t, build(t).Accept(rec))
	assert.Contains(t, rec.Calls, "dstdesc Method 0 (Lpkg/Main;Lc;)LHelper;")
	assert.NotContains(t, rec.Calls, "dstdesc Field 0 J")
}

func TestTree_AcceptPrunes(t *testing.T) {
	rec := &visitortest.Recorder{Skip: map[visitor.ElementKind]bool{visitor.Class: true}}

	require.NoError(t, build(t).Accept(rec))
	assert.Equal(t, []string{
		"header",
		"namespaces obf named",
		"metadata escaped-names=",
		"content",
		"package a",
		"dst Package 0 pkg",
		"enter Package",
		"class a/A",
		"class b",
		"end",
	}, rec.Calls)
}

func TestTree_AcceptMultiplePasses(t *testing.T) {
	rec := &visitortest.Recorder{Want: visitor.NeedsMultiplePasses, Passes: 2, SkipContent: true}

	require.NoError(t, build(t).Accept(rec))
	assert.Equal(t, 2, rec.Pass())
}

func TestTree_AcceptUnexpectedPass(t *testing.T) {
	rec := &visitortest.Recorder{Passes: 3, SkipContent: true}

	require.ErrorIs(t, build(t).Accept(rec), visitor.ErrUnexpectedPass)
	assert.Equal(t, 1, rec.Pass())
}

func TestMapDesc(t *testing.T) {
	tr := build(t)

	assert.Equal(t, "(Lpkg/Main;Lc;)LHelper;", tr.MapDesc("(La/A;Lc;)Lb;", 0))
	assert.Equal(t, "[[La/A;", tr.MapDesc("[[La/A;", 1), "no name in namespace 1")
	assert.Equal(t, "I", tr.MapDesc("I", 0))
}

func mustClass(t *testing.T, tr *Tree, name string) *Class {
	t.Helper()

	c, ok := tr.Class(name)
	require.True(t, ok)

	return c
}
