package scene

import (
	"fmt"
	"os"
)

// Load reads and parses a scene file. A missing file unwraps to
// fs.ErrNotExist; malformed content unwraps to *ParseError.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse scene %q: %w", path, err)
	}
	return s, nil
}
