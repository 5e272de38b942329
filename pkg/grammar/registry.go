package grammar

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Registry maps grammar names, aliases and file extensions to grammars.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*Grammar
	byAlias map[string]string
	byExt   map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]*Grammar),
		byAlias: make(map[string]string),
		byExt:   make(map[string]string),
	}
}

// NewDefaultRegistry creates a registry holding the built-in grammars.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, g := range Builtins() {
		// Built-ins never collide.
		_ = reg.Register(g)
	}
	return reg
}

// Register adds a grammar. A grammar with an existing name replaces the
// previous one. An alias claimed by another grammar is an error; a shared
// extension goes to the grammar registered last.
func (r *Registry) Register(g *Grammar) error {
	if g == nil || g.Name == "" {
		return fmt.Errorf("register grammar: %w", ErrNoName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, alias := range g.Aliases {
		alias = strings.ToLower(alias)
		if owner, ok := r.byAlias[alias]; ok && owner != g.Name {
			return fmt.Errorf("register grammar %q: alias %q already used by %q", g.Name, alias, owner)
		}
	}

	if old, ok := r.byName[g.Name]; ok {
		r.forget(old)
	}

	r.byName[g.Name] = g
	for _, alias := range g.Aliases {
		r.byAlias[strings.ToLower(alias)] = g.Name
	}
	for _, ext := range g.Extensions {
		r.byExt[ext] = g.Name
	}

	return nil
}

func (r *Registry) forget(g *Grammar) {
	for alias, owner := range r.byAlias {
		if owner == g.Name {
			delete(r.byAlias, alias)
		}
	}
	for ext, owner := range r.byExt {
		if owner == g.Name {
			delete(r.byExt, ext)
		}
	}
}

// Lookup finds a grammar by name or alias, case-insensitively.
func (r *Registry) Lookup(name string) (*Grammar, bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if g, ok := r.byName[name]; ok {
		return g, true
	}
	if target, ok := r.byAlias[name]; ok {
		g, ok := r.byName[target]
		return g, ok
	}
	return nil, false
}

// ForFile finds a grammar by the extension of path.
func (r *Registry) ForFile(path string) (*Grammar, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byExt[ext]
	if !ok {
		return nil, false
	}
	g, ok := r.byName[name]
	return g, ok
}

// Names returns the registered grammar names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Extensions returns every claimed file extension, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
