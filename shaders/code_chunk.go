package shaders

import (
	"fmt"
	"os"
)

// CodeChunk is a named piece of source code that can be loaded from and saved to disk
type CodeChunk struct {
	name   string
	source string
}

func NewCodeChunk(name, src string) CodeChunk {
	return CodeChunk{name: name, source: src}
}

func (c *CodeChunk) Name() string {
	return c.name
}

func (c *CodeChunk) Source() string {
	return c.source
}

func (c *CodeChunk) SetSource(src string) {
	c.source = src
}

func (c *CodeChunk) LoadFile(path string) error {

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source of '%s': %w", c.name, err)
	}

	c.source = string(src)
	return nil
}

func (c *CodeChunk) SaveFile(path string) error {

	if err := os.WriteFile(path, []byte(c.source), 0644); err != nil {
		return fmt.Errorf("failed to save source of '%s': %w", c.name, err)
	}

	return nil
}
