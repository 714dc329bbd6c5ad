package brand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	// When: loading with no path
	dictionary, err := Load("")

	// Then: the embedded list is used and every entry has a name
	require.NoError(t, err)
	require.Greater(t, dictionary.Len(), 200)

	for _, entry := range dictionary.Brands() {
		assert.NotEmpty(t, entry.Name)
	}
}

func TestLoad_FileOverride(t *testing.T) {
	// Given: a dictionary file mixing bare strings and objects
	path := filepath.Join(t.TempDir(), "brands.json")
	content := `["Nike", {"name": "Coca-Cola"}, "Adidas"]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// When: loading from the file
	dictionary, err := Load(path)

	// Then: both shapes normalize to plain brands, order preserved
	require.NoError(t, err)
	require.Equal(t, 3, dictionary.Len())
	assert.Equal(t, "Nike", dictionary.Brands()[0].Name)
	assert.Equal(t, "Coca-Cola", dictionary.Brands()[1].Name)
	assert.Equal(t, "Adidas", dictionary.Brands()[2].Name)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("Empty list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

		_, err := Load(path)
		require.ErrorIs(t, err, ErrEmptyDictionary)
	})
}
