package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDiff(t *testing.T) {
	t.Run("renders no changes message", func(t *testing.T) {
		assert.Equal(t, "No changes detected.", RenderDiff(nil, nil, nil))
	})

	t.Run("renders added dependencies", func(t *testing.T) {
		result := RenderDiff([]string{"@openimis/fe-core"}, nil, nil)

		assert.Contains(t, result, "Added:")
		assert.Contains(t, result, "+ @openimis/fe-core")
		assert.Contains(t, result, "1 added")
	})

	t.Run("renders removed dependencies", func(t *testing.T) {
		result := RenderDiff(nil, []string{"@openimis/fe-legacy"}, nil)

		assert.Contains(t, result, "Removed:")
		assert.Contains(t, result, "- @openimis/fe-legacy")
		assert.Contains(t, result, "1 removed")
	})

	t.Run("renders modified dependencies", func(t *testing.T) {
		result := RenderDiff(nil, nil, []ModifiedItem{
			{Name: "@openimis/fe-core", Diff: "1.0.0 -> 1.5.1"},
		})

		assert.Contains(t, result, "Modified:")
		assert.Contains(t, result, "~ @openimis/fe-core")
		assert.Contains(t, result, "    1.0.0 -> 1.5.1")
		assert.Contains(t, result, "1 modified")
	})

	t.Run("renders all change types", func(t *testing.T) {
		result := RenderDiff(
			[]string{"@openimis/fe-new"},
			[]string{"@openimis/fe-old"},
			[]ModifiedItem{{Name: "@openimis/fe-core"}},
		)
		assert.Contains(t, result, "1 added, 1 removed, 1 modified")
	})
}

func TestDiffSummary(t *testing.T) {
	assert.Equal(t, "No changes", diffSummary(0, 0, 0))
	assert.Equal(t, "12 added", diffSummary(12, 0, 0))
	assert.Equal(t, "2 removed, 3 modified", diffSummary(0, 2, 3))
}

func TestIndentDiff(t *testing.T) {
	assert.Equal(t, "", IndentDiff("", "  "))
	assert.Equal(t, "  a\n  b\n", IndentDiff("a\n\nb", "  "))
}

func TestDiffDocuments(t *testing.T) {
	before := []byte(`{"name": "app", "dependencies": {"@openimis/fe-core": "1.0.0", "react": "^17.0.2"}}`)

	t.Run("equal documents", func(t *testing.T) {
		out, err := DiffDocuments(before, before, false)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("changed version", func(t *testing.T) {
		after := []byte(`{"name": "app", "dependencies": {"@openimis/fe-core": "1.5.1", "react": "^17.0.2"}}`)

		out, err := DiffDocuments(before, after, false)
		require.NoError(t, err)
		assert.Contains(t, out, "1.0.0")
		assert.Contains(t, out, "1.5.1")
	})

	t.Run("both empty", func(t *testing.T) {
		out, err := DiffDocuments(nil, nil, false)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestUseColor(t *testing.T) {
	assert.False(t, UseColor(&bytes.Buffer{}))
}
