// Package production connects groups to the outside world: definition
// files on disk, change publishing, and export to DOT, JSON and YAML.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/groupx/internal/primitives"
)

// DefinitionStore saves and loads group definitions by name.
type DefinitionStore interface {
	Save(ctx context.Context, def *primitives.Definition) error
	Load(ctx context.Context, name string) (*primitives.Definition, error)
}

type codec struct {
	ext       string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

var (
	jsonCodec = codec{
		ext:       ".json",
		marshal:   func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") },
		unmarshal: json.Unmarshal,
	}
	yamlCodec = codec{ext: ".yaml", marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}
)

// fileStore keeps one file per definition in dir.
type fileStore struct {
	dir   string
	codec codec
}

// JSONStore is a file-based DefinitionStore using JSON.
type JSONStore struct{ fileStore }

// YAMLStore is a file-based DefinitionStore using YAML.
type YAMLStore struct{ fileStore }

var (
	_ DefinitionStore = (*JSONStore)(nil)
	_ DefinitionStore = (*YAMLStore)(nil)
)

// NewJSONStore creates a JSONStore, ensuring the directory exists.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONStore{fileStore{dir: dir, codec: jsonCodec}}, nil
}

// NewYAMLStore creates a YAMLStore, ensuring the directory exists.
func NewYAMLStore(dir string) (*YAMLStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLStore{fileStore{dir: dir, codec: yamlCodec}}, nil
}

// FileName maps a group name to a file name stem: characters other than
// letters, digits, '-' and '_' become '_'.
func FileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}

func (s *fileStore) path(name string) string {
	return filepath.Join(s.dir, FileName(name)+s.codec.ext)
}

func (s *fileStore) Save(ctx context.Context, def *primitives.Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if def.Name == "" {
		return fmt.Errorf("%w: empty name", primitives.ErrInvalid)
	}
	data, err := s.codec.marshal(def)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", def.Name, err)
	}
	fn := s.path(def.Name)
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (s *fileStore) Load(ctx context.Context, name string) (*primitives.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn := s.path(name)
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("group %q: %w", name, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return decode(fn, data, s.codec)
}

func decode(fn string, data []byte, c codec) (*primitives.Definition, error) {
	var def primitives.Definition
	if err := c.unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", fn, err)
	}
	resolved, err := def.Resolve()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	if err := resolved.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return resolved, nil
}

func codecFor(fn string) (codec, bool) {
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".json":
		return jsonCodec, true
	case ".yaml", ".yml":
		return yamlCodec, true
	}
	return codec{}, false
}

// LoadFile reads and validates one definition file. The format follows the
// extension.
func LoadFile(fn string) (*primitives.Definition, error) {
	c, ok := codecFor(fn)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported extension", fn)
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return decode(fn, data, c)
}

// LoadDir reads every .json, .yaml and .yml definition in dir, in file name
// order. Other files are skipped. The first invalid file fails the load.
func LoadDir(dir string) ([]*primitives.Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := codecFor(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	defs := make([]*primitives.Definition, 0, len(names))
	for _, n := range names {
		d, err := LoadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, nil
}
