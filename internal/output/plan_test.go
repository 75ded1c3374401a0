package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type samplePlan struct {
	Source  string   `json:"source" yaml:"source"`
	Removed []string `json:"removed,omitempty" yaml:"removed,omitempty"`
}

func TestWriteDocument(t *testing.T) {
	plan := samplePlan{Source: "openimis.json", Removed: []string{"@openimis/fe-old"}}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteDocument(&buf, plan, FormatYAML))
		assert.Contains(t, buf.String(), "source: openimis.json\n")

		var back samplePlan
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
		assert.Equal(t, plan, back)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteDocument(&buf, plan, FormatJSON))
		assert.JSONEq(t, `{"source": "openimis.json", "removed": ["@openimis/fe-old"]}`, buf.String())
	})
}
