package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMetadata(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		meta, err := LoadMetadata(filepath.Join(t.TempDir(), "absent.json"))
		require.NoError(t, err)

		meta.resolve()

		assert.Equal(t, DefaultInputName, meta.InputName)
		assert.Equal(t, DefaultOutputName, meta.OutputName)
		assert.Equal(t, 28, meta.ImageSize)
		assert.Equal(t, []int64{1, 28, 28, 1}, meta.InputShape)
		assert.Equal(t, []int64{1, 50}, meta.OutputShape)
		assert.Len(t, meta.Classes, 50)
		assert.NoError(t, meta.Validate())
	})

	t.Run("parses JSON", func(t *testing.T) {
		path := writeFile(t, "model_metadata.json", `{"input_name": "conv2d_input", "output_name": "dense_2", "input_shape": [1, 1, 32, 32], "output_shape": [1, 3], "classes": ["cat", "dog", "sun"], "image_size": 32, "invert": true}`)

		meta, err := LoadMetadata(path)
		require.NoError(t, err)
		meta.resolve()

		assert.Equal(t, "conv2d_input", meta.InputName)
		assert.Equal(t, "dense_2", meta.OutputName)
		assert.Equal(t, []int64{1, 1, 32, 32}, meta.InputShape)
		assert.Equal(t, []string{"cat", "dog", "sun"}, meta.Classes)
		assert.True(t, meta.Invert)
		assert.Equal(t, 32*32, meta.InputSize())
		assert.NoError(t, meta.Validate())
	})

	t.Run("parses YAML", func(t *testing.T) {
		path := writeFile(t, "model_metadata.yaml", "image_size: 20\nclasses:\n  - cat\n  - dog\n")

		meta, err := LoadMetadata(path)
		require.NoError(t, err)
		meta.resolve()

		assert.Equal(t, []int64{1, 20, 20, 1}, meta.InputShape)
		assert.Equal(t, []int64{1, 2}, meta.OutputShape)
		assert.NoError(t, meta.Validate())
	})

	t.Run("rejects malformed file", func(t *testing.T) {
		path := writeFile(t, "model_metadata.json", "{not: [valid")

		_, err := LoadMetadata(path)

		assert.Error(t, err)
	})
}

func TestMetadataValidate(t *testing.T) {
	tests := []struct {
		name string
		meta Metadata
	}{
		{
			name: "output does not match classes",
			meta: Metadata{ImageSize: 28, InputShape: []int64{1, 28, 28, 1}, OutputShape: []int64{1, 10}, Classes: []string{"a"}},
		},
		{
			name: "input does not match image size",
			meta: Metadata{ImageSize: 28, InputShape: []int64{1, 32, 32, 1}, OutputShape: []int64{1, 1}, Classes: []string{"a"}},
		},
		{
			name: "negative dimension",
			meta: Metadata{ImageSize: 28, InputShape: []int64{-1, 28, 28, 1}, OutputShape: []int64{1, 1}, Classes: []string{"a"}},
		},
		{
			name: "zero image size",
			meta: Metadata{ImageSize: 0, InputShape: []int64{1}, OutputShape: []int64{1}, Classes: []string{"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.meta.Validate())
		})
	}
}

func TestLoadLabels(t *testing.T) {
	t.Run("reads one label per line", func(t *testing.T) {
		path := writeFile(t, "labels.txt", "cat\n\n  dog \nalarm clock\n")

		labels, err := LoadLabels(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"cat", "dog", "alarm clock"}, labels)
	})

	t.Run("rejects empty file", func(t *testing.T) {
		_, err := LoadLabels(writeFile(t, "labels.txt", "\n\n"))

		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLabels(filepath.Join(t.TempDir(), "labels.txt"))

		assert.Error(t, err)
	})
}
