package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/openimis/fe-config/internal/errors"
)

func TestNewValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	assert.True(t, v.schema.Exists())
}

func TestValidatorValidate(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	t.Run("accepts complete document", func(t *testing.T) {
		assert.NoError(t, v.Validate("openimis.json", []byte(sampleConfig)))
	})

	t.Run("accepts opaque intl values", func(t *testing.T) {
		data := []byte(`{"locales": [{"languages": ["en"], "intl": {"locale": "en", "n": 1}}]}`)
		assert.NoError(t, v.Validate("openimis.json", data))
	})

	t.Run("accepts opaque fileNames values", func(t *testing.T) {
		for _, fileNames := range []string{`"en-GB"`, `["a", "b"]`, `{"en": {"nested": true}}`, `null`} {
			data := []byte(`{"locales": [{"languages": ["en"], "fileNames": ` + fileNames + `}]}`)
			assert.NoError(t, v.Validate("openimis.json", data), fileNames)
		}
	})

	t.Run("leaves empty npm descriptor to module resolution", func(t *testing.T) {
		assert.NoError(t, v.Validate("openimis.json", []byte(`{"modules": [{"npm": ""}]}`)))
	})

	t.Run("rejects missing npm descriptor", func(t *testing.T) {
		err := v.Validate("openimis.json", []byte(`{"modules": [{"name": "Core"}]}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrConfigParse))

		var detail *oerrors.DetailError
		require.True(t, errors.As(err, &detail))
		assert.Equal(t, "openimis.json", detail.Location)
		assert.NotEmpty(t, detail.Hint)
	})

	t.Run("rejects non-string module name", func(t *testing.T) {
		err := v.Validate("openimis.json", []byte(`{"modules": [{"npm": "@a/b@1", "name": 3}]}`))
		assert.True(t, errors.Is(err, oerrors.ErrConfigParse))
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		err := v.Validate("env", []byte(`{`))
		assert.True(t, errors.Is(err, oerrors.ErrConfigParse))
	})
}
