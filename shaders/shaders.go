// Package shaders holds the built-in GLSL programs for the raytracing pass.
package shaders

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed vertex.glsl
var Vertex string

//go:embed fragment.glsl
var Fragment string

// Source returns the contents of path, or fallback when path is empty.
func Source(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader: %w", err)
	}
	return string(data), nil
}
