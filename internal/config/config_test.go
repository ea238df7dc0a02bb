package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapping-io/diagnostic"
	"mapping-io/format"
)

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, Default(), f)
	assert.Equal(t, "source", f.Namespaces.Source)
	assert.Equal(t, "target", f.Namespaces.Target)
	assert.Equal(t, PolicyCollect, f.Errors.Policy)
	assert.Equal(t, "error", f.Errors.Threshold)
	assert.Equal(t, "info", f.LogLevel)

	ff, err := f.FormatValue()
	require.NoError(t, err)
	assert.Equal(t, format.Unknown, ff)
}

func TestLoadFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	data := `
format: tinyv2
namespaces:
  source: official
rename:
  official: obf
errors:
  policy: FAIL
  threshold: warning
log_level: debug
`
	require.NoError(t, afero.WriteFile(fsys, "mappingio.yaml", []byte(data), 0o644))

	f, err := LoadFile(fsys, "mappingio.yaml")
	require.NoError(t, err)

	ff, err := f.FormatValue()
	require.NoError(t, err)
	assert.Equal(t, format.Tiny2File, ff)
	assert.Equal(t, "official", f.Namespaces.Source)
	assert.Equal(t, "target", f.Namespaces.Target)
	assert.Equal(t, map[string]string{"official": "obf"}, f.Rename)
	assert.Equal(t, PolicyFail, f.Errors.Policy)
	assert.Equal(t, "debug", f.LogLevel)

	_, err = LoadFile(fsys, "missing.yaml")
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "format: [unclosed"},
		{"unknown format", "format: tinyy3"},
		{"unknown policy", "errors:\n  policy: ignore"},
		{"unknown threshold", "errors:\n  threshold: fatal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestSink(t *testing.T) {
	warn := diagnostic.Diagnostic{Severity: diagnostic.SeverityWarning, Message: "w"}

	t.Run("collect", func(t *testing.T) {
		col := diagnostic.NewCollector()
		sink, err := Default().Sink(col)
		require.NoError(t, err)

		require.NoError(t, sink.Add(warn))
		assert.Len(t, col.Diagnostics, 1)
	})

	t.Run("fail", func(t *testing.T) {
		f := Default()
		f.Errors.Policy = PolicyFail
		f.Errors.Threshold = "warning"

		col := diagnostic.NewCollector()
		sink, err := f.Sink(col)
		require.NoError(t, err)

		var derr *diagnostic.Error
		require.ErrorAs(t, sink.Add(warn), &derr)
		assert.Len(t, col.Diagnostics, 1)
	})

	t.Run("discard", func(t *testing.T) {
		f := Default()
		f.Errors.Policy = PolicyDiscard

		col := diagnostic.NewCollector()
		sink, err := f.Sink(col)
		require.NoError(t, err)

		require.NoError(t, sink.Add(warn))
		assert.Empty(t, col.Diagnostics)
	})
}

func TestMarshal_RoundTrip(t *testing.T) {
	f := Default()
	f.Rename = map[string]string{"a": "b"}

	data, err := Marshal(f)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}
