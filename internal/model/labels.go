package model

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultClasses is the doodle class list the bundled model was trained on.
// Order matches the model output dimensions.
var DefaultClasses = []string{
	"ambulance", "belt", "bear", "bulldozer", "blueberry", "airplane", "bread",
	"bat", "apple", "bandage", "beach", "asparagus", "blackberry", "backpack",
	"baseball", "book", "arm", "alarm clock", "broccoli", "beard", "boomerang",
	"birthday cake", "bird", "bottlecap", "The Eiffel Tower", "anvil", "barn",
	"banana", "brain", "basketball", "angel", "ant", "animal migration", "axe",
	"baseball bat", "bed", "bee", "bench", "bicycle", "binoculars", "bowtie",
	"bracelet", "bridge", "broom", "bucket", "bus", "bush", "butterfly", "cactus", "cake",
}

// LoadLabels reads one label per line. Blank lines are skipped.
func LoadLabels(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open labels: %w", err)
	}
	defer file.Close()

	var labels []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		label := strings.TrimSpace(scanner.Text())
		if label == "" {
			continue
		}
		labels = append(labels, label)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels file %s is empty", path)
	}

	return labels, nil
}
