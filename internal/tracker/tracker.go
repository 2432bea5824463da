// Package tracker ties the file registry to the two ranked indexes
// and exposes the command-level operations. Every mutation that
// changes a file's recency or version count replaces that file's
// entries in the affected indexes; queries never touch them.
package tracker

import (
	"time"

	"treevc/internal/rankindex"
	"treevc/internal/registry"
	"treevc/internal/vtree"
)

// Options configures a Tracker.
type Options struct {
	Author string           // recorded on snapshots
	Now    func() time.Time // clock; time.Now if nil
}

// Tracker owns all shared state: the registry plus the recency and
// tree-size indexes. It is not safe for concurrent use.
type Tracker struct {
	files  *registry.Registry
	recent *rankindex.Index[int64] // key: last-modified UnixNano
	sizes  *rankindex.Index[int]   // key: total versions created
}

// New creates an empty Tracker.
func New(opts Options) *Tracker {
	return &Tracker{
		files:  registry.New(registry.Options{Author: opts.Author, Now: opts.Now}),
		recent: rankindex.New[int64](),
		sizes:  rankindex.New[int](),
	}
}

// Create registers a new file and seeds both indexes.
func (tk *Tracker) Create(name string) error {
	tree, err := tk.files.Create(name)
	if err != nil {
		return err
	}
	tk.touch(name, tree, true)
	return nil
}

// Read returns the active content of a file. Read-only; no index
// changes.
func (tk *Tracker) Read(name string) (string, error) {
	tree, err := tk.files.Lookup(name)
	if err != nil {
		return "", err
	}
	return tree.Read()
}

// Insert appends text to a file's active content and returns the new
// content. Refreshes both indexes: an insert can grow the tree.
func (tk *Tracker) Insert(name, text string) (string, error) {
	return tk.mutate(name, func(tree *vtree.Tree) error {
		return tree.Insert(text)
	})
}

// Update replaces a file's active content and returns the new content.
func (tk *Tracker) Update(name, text string) (string, error) {
	return tk.mutate(name, func(tree *vtree.Tree) error {
		return tree.Update(text)
	})
}

func (tk *Tracker) mutate(name string, op func(*vtree.Tree) error) (string, error) {
	tree, err := tk.files.Lookup(name)
	if err != nil {
		return "", err
	}
	if err := op(tree); err != nil {
		return "", err
	}
	tk.touch(name, tree, true)
	return tree.Read()
}

// Snapshot fixes a file's active version. Only recency changes: the
// version count stays as it was.
func (tk *Tracker) Snapshot(name, message string) error {
	tree, err := tk.files.Lookup(name)
	if err != nil {
		return err
	}
	if err := tree.Snapshot(message); err != nil {
		return err
	}
	tk.touch(name, tree, false)
	return nil
}

// Rollback moves a file's active version to its parent and returns the
// content there. Refreshes recency only.
func (tk *Tracker) Rollback(name string) (string, error) {
	tree, err := tk.files.Lookup(name)
	if err != nil {
		return "", err
	}
	if err := tree.Rollback(); err != nil {
		return "", err
	}
	tk.touch(name, tree, false)
	return tree.Read()
}

// Checkout moves a file's active version directly to the given id and
// returns the content there. Refreshes recency only.
func (tk *Tracker) Checkout(name string, id int) (string, error) {
	tree, err := tk.files.Lookup(name)
	if err != nil {
		return "", err
	}
	if err := tree.Checkout(id); err != nil {
		return "", err
	}
	tk.touch(name, tree, false)
	return tree.Read()
}

// History returns the snapshotted versions on the root-to-active path
// of a file.
func (tk *Tracker) History(name string) ([]*vtree.Node, error) {
	tree, err := tk.files.Lookup(name)
	if err != nil {
		return nil, err
	}
	return tree.History(), nil
}

// RecentFile is one entry of a RecentFiles result.
type RecentFile struct {
	Name     string
	Modified time.Time
}

// RecentFiles returns the k most recently mutated files, newest first.
func (tk *Tracker) RecentFiles(k int) ([]RecentFile, error) {
	entries, err := tk.recent.TopK(k)
	if err != nil {
		return nil, err
	}
	out := make([]RecentFile, len(entries))
	for i, e := range entries {
		out[i] = RecentFile{Name: e.Name, Modified: time.Unix(0, e.Key)}
	}
	return out, nil
}

// TreeSize is one entry of a BiggestTrees result.
type TreeSize struct {
	Name     string
	Versions int
}

// BiggestTrees returns the k files with the most versions, largest
// first.
func (tk *Tracker) BiggestTrees(k int) ([]TreeSize, error) {
	entries, err := tk.sizes.TopK(k)
	if err != nil {
		return nil, err
	}
	out := make([]TreeSize, len(entries))
	for i, e := range entries {
		out[i] = TreeSize{Name: e.Name, Versions: e.Key}
	}
	return out, nil
}

// Len returns the number of tracked files, which is also the size of
// each index.
func (tk *Tracker) Len() int {
	return tk.files.Len()
}

// touch replaces the file's entry in the recency index and, when the
// operation can change the version count, in the size index too.
func (tk *Tracker) touch(name string, tree *vtree.Tree, sizeChanged bool) {
	tk.recent.Update(tree.LastModified().UnixNano(), name)
	if sizeChanged {
		tk.sizes.Update(tree.Versions(), name)
	}
}
