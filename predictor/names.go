package predictor

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadNames reads the class names the model was trained on from a text file
// containing one name per line. Line order gives the class index.
func LoadNames(file string) (map[int]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	names := make(map[int]string)
	scanner := bufio.NewScanner(f)

	idx := 0
	for scanner.Scan() {
		names[idx] = strings.TrimSpace(scanner.Text())
		idx++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return names, nil
}
