// Package prompts resolves agent prompt templates by dotted key and
// performs literal placeholder substitution.
package prompts

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tradecouncil/pkg/errors"
)

//go:embed assets
var embeddedFS embed.FS

// Provider resolves a template by dotted key, e.g. "react.analyst.market.system".
// The second return reports whether the key yielded a non-empty template.
type Provider interface {
	Lookup(key string) (string, bool)
}

// Null is a Provider that resolves nothing, forcing callers onto their
// built-in defaults.
type Null struct{}

func (Null) Lookup(string) (string, bool) { return "", false }

// Registry loads .txt templates from a filesystem and resolves them by
// dotted key derived from the file path: react/analyst/market/system.txt
// becomes react.analyst.market.system.
type Registry struct {
	fs        fs.FS
	mu        sync.RWMutex
	templates map[string]string
}

// NewRegistry loads all templates under basePath on disk.
func NewRegistry(basePath string) (*Registry, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "resolve prompt base path: %v", err)
	}

	return NewRegistryFromFS(os.DirFS(abs))
}

// NewRegistryFromFS constructs a registry from an arbitrary filesystem.
func NewRegistryFromFS(filesystem fs.FS) (*Registry, error) {
	r := &Registry{
		fs:        filesystem,
		templates: map[string]string{},
	}

	if err := r.loadAll(); err != nil {
		return nil, err
	}

	return r, nil
}

// Embedded returns a registry over the built-in template assets.
func Embedded() *Registry {
	embeddedOnce.Do(func() {
		sub, err := fs.Sub(embeddedFS, "assets")
		if err == nil {
			embeddedRegistry, embeddedErr = NewRegistryFromFS(sub)
			return
		}
		embeddedErr = err
	})

	if embeddedErr != nil {
		panic(embeddedErr)
	}

	return embeddedRegistry
}

// Lookup resolves a template by its dotted key.
func (r *Registry) Lookup(key string) (string, bool) {
	r.mu.RLock()
	tmpl, ok := r.templates[key]
	r.mu.RUnlock()

	if !ok || strings.TrimSpace(tmpl) == "" {
		return "", false
	}

	return tmpl, true
}

// Keys returns all loaded template keys.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.templates))
	for k := range r.templates {
		keys = append(keys, k)
	}

	return keys
}

func (r *Registry) loadAll() error {
	return fs.WalkDir(r.fs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".txt" {
			return nil
		}

		content, err := fs.ReadFile(r.fs, path)
		if err != nil {
			return errors.Wrapf(errors.ErrInternal, "read prompt %s: %v", path, err)
		}

		r.mu.Lock()
		r.templates[pathToKey(path)] = string(content)
		r.mu.Unlock()

		return nil
	})
}

func pathToKey(path string) string {
	normalized := filepath.ToSlash(path)
	normalized = strings.TrimPrefix(normalized, "/")
	normalized = strings.TrimSuffix(normalized, filepath.Ext(normalized))
	return strings.ReplaceAll(normalized, "/", ".")
}

var (
	embeddedOnce     sync.Once
	embeddedRegistry *Registry
	embeddedErr      error
)
