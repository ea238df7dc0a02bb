package pass

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapping-io/internal/column"
	"mapping-io/visitor"
	"mapping-io/visitor/visitortest"
)

// classes decodes one class name per line.
func classes(t *testing.T, input string) (*column.Reader, DecodeFunc) {
	t.Helper()

	r, err := column.NewReader(strings.NewReader(input), '\t', '\t')
	require.NoError(t, err)

	decode := func(v visitor.Visitor, first bool) error {
		ok, err := Header(v, "src", "dst")
		if err != nil || !ok {
			return err
		}

		for {
			name, _ := r.NextCol()

			ok, err = v.VisitClass(name)
			if err != nil {
				return err
			}

			if ok {
				_, err = v.VisitElementContent(visitor.Class)
				if err != nil {
					return err
				}
			}

			ok, err = r.NextLine(0)
			if err != nil || !ok {
				return err
			}
		}
	}

	return r, decode
}

func TestBuffered(t *testing.T) {
	tests := []struct {
		name  string
		flags visitor.Flags
		opts  Options
		want  bool
	}{
		{"none", visitor.FlagsNone, Options{}, false},
		{"uniqueness", visitor.NeedsElementUniqueness, Options{}, true},
		{"dst field desc", visitor.NeedsDstFieldDesc, Options{}, true},
		{"dst method desc", visitor.NeedsDstMethodDesc, Options{}, true},
		{"header metadata", visitor.NeedsHeaderMetadata, Options{}, false},
		{"header metadata in content", visitor.NeedsHeaderMetadata, Options{MetadataInContent: true}, true},
		{"multiple passes", visitor.NeedsMultiplePasses, Options{MetadataInContent: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Buffered(tt.flags, tt.opts))
		})
	}
}

func TestRun_SinglePass(t *testing.T) {
	r, decode := classes(t, "a\nb\n")
	rec := &visitortest.Recorder{}

	require.NoError(t, Run(r, rec, Options{}, decode))
	assert.Equal(t, []string{
		"header",
		"namespaces src dst",
		"content",
		"class a",
		"enter Class",
		"class b",
		"enter Class",
		"end",
	}, rec.Calls)
}

func TestRun_UnexpectedPass(t *testing.T) {
	r, decode := classes(t, "a\n")
	rec := &visitortest.Recorder{Passes: 2}

	require.ErrorIs(t, Run(r, rec, Options{}, decode), ErrUnexpectedPass)
}

func TestRun_MultiplePasses(t *testing.T) {
	r, decode := classes(t, "a\nb\n")
	rec := &visitortest.Recorder{Want: visitor.NeedsMultiplePasses, Passes: 3}

	require.NoError(t, Run(r, rec, Options{}, decode))
	assert.Equal(t, 3, rec.Pass())

	once := []string{"header", "namespaces src dst", "content", "class a", "enter Class", "class b", "enter Class", "end"}

	var want []string
	for range 3 {
		want = append(want, once...)
	}

	assert.Equal(t, want, rec.Calls)

	// the mark was released
	_, err := r.Reset()
	require.ErrorIs(t, err, column.ErrNoMark)
}

func TestRun_BufferedDeduplicates(t *testing.T) {
	r, decode := classes(t, "a\nb\na\n")
	rec := &visitortest.Recorder{Want: visitor.NeedsElementUniqueness}

	require.NoError(t, Run(r, rec, Options{}, decode))
	assert.Equal(t, []string{
		"header",
		"namespaces src dst",
		"content",
		"class a",
		"enter Class",
		"class b",
		"enter Class",
		"end",
	}, rec.Calls)
}

func TestRun_BufferedMultiplePasses(t *testing.T) {
	r, decode := classes(t, "a\n")
	rec := &visitortest.Recorder{Want: visitor.NeedsElementUniqueness | visitor.NeedsMultiplePasses, Passes: 2}

	require.NoError(t, Run(r, rec, Options{}, decode))
	assert.Equal(t, 2, rec.Pass())
}

func TestRun_BufferedUnexpectedPass(t *testing.T) {
	r, decode := classes(t, "a\nb\n")
	rec := &visitortest.Recorder{Want: visitor.NeedsElementUniqueness, Passes: 3}

	require.ErrorIs(t, Run(r, rec, Options{}, decode), ErrUnexpectedPass)
	assert.Equal(t, 1, rec.Pass())
}

func TestRun_DecodeError(t *testing.T) {
	boom := errors.New("boom")
	rec := &visitortest.Recorder{}

	err := Run(Restart{}, rec, Options{}, func(visitor.Visitor, bool) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, rec.Calls)
}

func TestRun_Restart(t *testing.T) {
	rec := &visitortest.Recorder{Want: visitor.NeedsMultiplePasses, Passes: 2}

	var firsts []bool

	err := Run(Restart{}, rec, Options{}, func(v visitor.Visitor, first bool) error {
		firsts = append(firsts, first)

		_, err := Header(v, "a")

		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, firsts)
}

func TestHeader_Skips(t *testing.T) {
	rec := &visitortest.Recorder{SkipHeader: true, SkipContent: true}

	ok, err := Header(rec, "src", "a", "b")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"header", "content"}, rec.Calls)

	rec = &visitortest.Recorder{}

	ok, err = Header(rec, "src", "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"header", "namespaces src a,b", "content"}, rec.Calls)
}
