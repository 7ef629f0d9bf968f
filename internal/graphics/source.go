package graphics

import (
	"fmt"
	"os"
)

// ShaderSource is the text of one stage together with the name used in diagnostics.
type ShaderSource struct {
	Name string
	Text string
}

// ReadSource returns the whole file as text. On error the text is empty so
// the caller can still hand it to the compiler, which then reports the stage
// as failed.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read shader source: %w", err)
	}
	return string(data), nil
}
