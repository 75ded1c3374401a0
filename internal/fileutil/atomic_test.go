package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/openimis/fe-config/internal/errors"
)

func TestWriteAtomic(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "src", "modules.js")

		require.NoError(t, WriteAtomic(path, []byte("export const packages = []")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "export const packages = []", string(data))

		_, err = os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err), "temporary file should be gone")
	})

	t.Run("replaces existing content in full", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "package.json")
		require.NoError(t, os.WriteFile(path, []byte("a much longer previous content"), 0o600))

		require.NoError(t, WriteAtomic(path, []byte("{}")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("reports filesystem errors", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0o500))
		t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

		err := WriteAtomic(filepath.Join(dir, "package.json"), []byte("{}"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrFilesystem))
		assert.True(t, errors.Is(err, os.ErrPermission))
	})
}
