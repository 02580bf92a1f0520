package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.yaml.in/yaml/v3"
)

const (
	DefaultImageSize  = 28
	DefaultInputName  = "input"
	DefaultOutputName = "output"
)

// LoadMetadata reads the model sidecar file. JSON and YAML are both accepted.
// A missing file is not an error: the zero Metadata is returned and defaults
// are filled in later by resolve.
func LoadMetadata(path string) (Metadata, error) {
	var meta Metadata
	if path == "" {
		return meta, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return meta, nil
	}
	if err != nil {
		return meta, fmt.Errorf("failed to read metadata: %w", err)
	}

	if err := yaml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("failed to parse metadata: %w", err)
	}

	return meta, nil
}

func (m *Metadata) resolve() {
	if m.InputName == "" {
		m.InputName = DefaultInputName
	}
	if m.OutputName == "" {
		m.OutputName = DefaultOutputName
	}
	if len(m.Classes) == 0 {
		m.Classes = DefaultClasses
	}
	if m.ImageSize == 0 {
		m.ImageSize = DefaultImageSize
	}
	if len(m.InputShape) == 0 {
		size := int64(m.ImageSize)
		m.InputShape = []int64{1, size, size, 1}
	}
	if len(m.OutputShape) == 0 {
		m.OutputShape = []int64{1, int64(len(m.Classes))}
	}
}

// Validate checks that the tensor shapes agree with the image size and the
// class list.
func (m Metadata) Validate() error {
	if m.ImageSize < 1 {
		return fmt.Errorf("invalid image size: %d", m.ImageSize)
	}

	inputSize, err := shapeSize(m.InputShape)
	if err != nil {
		return fmt.Errorf("invalid input shape: %w", err)
	}
	if inputSize != m.ImageSize*m.ImageSize {
		return fmt.Errorf("input shape %v does not hold a %dx%d grayscale image", m.InputShape, m.ImageSize, m.ImageSize)
	}

	outputSize, err := shapeSize(m.OutputShape)
	if err != nil {
		return fmt.Errorf("invalid output shape: %w", err)
	}
	if outputSize != len(m.Classes) {
		return fmt.Errorf("output shape %v does not match %d classes", m.OutputShape, len(m.Classes))
	}

	return nil
}

// InputSize is the number of float32 values one input tensor holds.
func (m Metadata) InputSize() int {
	return m.ImageSize * m.ImageSize
}

func shapeSize(shape []int64) (int, error) {
	if len(shape) == 0 {
		return 0, errors.New("empty shape")
	}
	size := 1
	for _, dim := range shape {
		if dim < 1 {
			return 0, fmt.Errorf("non-positive dimension %d", dim)
		}
		size *= int(dim)
	}
	return size, nil
}
