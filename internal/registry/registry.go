// Package registry maps filenames to their version trees and enforces
// name uniqueness. It is the only shared mutable collection in the
// core; every tree of one registry shares one blob store, so identical
// snapshot content is stored once across files.
package registry

import (
	"strings"
	"time"

	"treevc/internal/blob"
	"treevc/internal/verr"
	"treevc/internal/vtree"
)

// Options configures a Registry and the trees it creates.
type Options struct {
	Author string           // recorded on snapshots
	Now    func() time.Time // clock; time.Now if nil
}

// Registry is a filename -> version tree map. No removal operation
// exists: a tracked file lives for the lifetime of the registry.
type Registry struct {
	opts  Options
	blobs *blob.Store
	trees map[string]*vtree.Tree
}

// New creates an empty Registry.
func New(opts Options) *Registry {
	return &Registry{
		opts:  opts,
		blobs: blob.NewStore(),
		trees: make(map[string]*vtree.Tree),
	}
}

// Create registers a new file and returns its freshly initialized tree.
func (r *Registry) Create(name string) (*vtree.Tree, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if _, ok := r.trees[name]; ok {
		return nil, verr.Conflictf("file %q already exists", name)
	}

	tree, err := vtree.New(vtree.Options{
		Blobs:  r.blobs,
		Author: r.opts.Author,
		Now:    r.opts.Now,
	})
	if err != nil {
		return nil, err
	}
	r.trees[name] = tree
	return tree, nil
}

// Lookup returns the tree for a registered filename.
func (r *Registry) Lookup(name string) (*vtree.Tree, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	tree, ok := r.trees[name]
	if !ok {
		return nil, verr.NotFoundf("file %q not found", name)
	}
	return tree, nil
}

// Len returns the number of registered files.
func (r *Registry) Len() int {
	return len(r.trees)
}

func checkName(name string) error {
	if name == "" {
		return verr.Validationf("file name cannot be empty")
	}
	if strings.ContainsAny(name, " \t\n\r") {
		return verr.Validationf("file name cannot contain whitespace")
	}
	return nil
}
