package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akmonengine/pivot/actor"
	"github.com/akmonengine/pivot/core"
)

// Extension of mesh files written by the store
const Extension = ".pvm"

// ErrLocation is returned for destinations that do not resolve inside the store root
var ErrLocation = errors.New("store: destination outside root")

// Store persists meshes as binary files below a root directory
type Store struct {
	Root string
}

// New creates a store rooted at root. The directory is created by the first Save.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("store: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %s: %w", root, err)
	}

	return &Store{Root: abs}, nil
}

// Resolve turns dir, absolute or relative to the root, into an absolute path
// inside the root. Symbolic links are followed, so a link under the root that
// points elsewhere is rejected.
func (s *Store) Resolve(dir string) (string, error) {
	path := dir
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Root, path)
	}
	path = filepath.Clean(path)

	if !within(s.Root, path) {
		return "", fmt.Errorf("%w: %s", ErrLocation, dir)
	}

	realRoot, err := evalExisting(s.Root)
	if err != nil {
		return "", fmt.Errorf("store: resolve %s: %w", s.Root, err)
	}
	realPath, err := evalExisting(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrLocation, dir, err)
	}
	if !within(realRoot, realPath) {
		return "", fmt.Errorf("%w: %s resolves to %s", ErrLocation, dir, realPath)
	}

	return path, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// evalExisting resolves the symbolic links of the deepest existing ancestor of
// path and appends the missing components unchanged.
func evalExisting(path string) (string, error) {
	var missing []string
	p := path
	for {
		resolved, err := filepath.EvalSymlinks(p)
		if err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if _, err := os.Lstat(p); err == nil {
			return "", fmt.Errorf("dangling link %s", p)
		}

		parent := filepath.Dir(p)
		if parent == p {
			return path, nil
		}
		missing = append([]string{filepath.Base(p)}, missing...)
		p = parent
	}
}

// Validate checks that dir is a usable destination
func (s *Store) Validate(dir string) error {
	path, err := s.Resolve(dir)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrLocation, dir)
	}

	return nil
}

// Contains reports whether the mesh was loaded from, or saved to, this store
func (s *Store) Contains(m *actor.Mesh) bool {
	if m == nil || m.AssetPath == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.Root, m.AssetPath))
	return err == nil
}

// Save writes m into dir under a unique file name derived from name and returns
// the persisted mesh, read back from disk, with its AssetPath set.
func (s *Store) Save(m *actor.Mesh, dir, name string) (*actor.Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("store: save %s: %w", name, err)
	}

	path, err := s.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", path, err)
	}

	file := uniquePath(filepath.Join(path, name))
	if err := writeFile(file, m); err != nil {
		return nil, err
	}
	core.LogDebug("saved mesh %q to %s", m.Name, file)

	return s.Load(file)
}

// Load reads a mesh file, absolute or relative to the root
func (s *Store) Load(path string) (*actor.Mesh, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Root, path)
	}

	m, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(s.Root, path)
	if err == nil && !strings.HasPrefix(rel, "..") {
		m.AssetPath = filepath.ToSlash(rel)
	}

	return m, nil
}

func uniquePath(base string) string {
	path := base + Extension
	for i := 1; ; i++ {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path
		}
		path = fmt.Sprintf("%s_%d%s", base, i, Extension)
	}
}

func writeFile(path string, m *actor.Mesh) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pvm-*")
	if err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, m); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}

	return nil
}
