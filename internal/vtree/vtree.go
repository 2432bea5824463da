// Package vtree implements the per-file version tree: a tree of
// immutable snapshot points with one mutable active edit point.
//
// Nodes live in an append-only arena owned by the tree; a node's slot
// in the arena is its version id, which gives O(1) checkout-by-id.
// Nodes are never freed, so history is permanent for the lifetime of
// the tree. Snapshotted content is handed to a content-addressed blob
// store and resolved by hash from then on; only the active,
// not-yet-snapshotted node carries a mutable buffer.
package vtree

import (
	"time"

	"treevc/internal/blob"
	"treevc/internal/verr"
)

// Node is one point in a file's version tree.
type Node struct {
	ID            int
	Message       string // set only when the node is snapshotted
	Author        string // set only when the node is snapshotted
	CreatedAt     time.Time
	SnapshottedAt time.Time // zero until the node is snapshotted
	Parent        *Node
	Children      []*Node // append-only, creation order

	buf     []byte    // mutable content while not snapshotted
	content blob.Hash // content address once snapshotted
}

// Snapshotted reports whether the node has been fixed as a snapshot.
func (n *Node) Snapshotted() bool {
	return !n.SnapshottedAt.IsZero()
}

// Blob returns the content hash of a snapshotted node.
func (n *Node) Blob() (blob.Hash, bool) {
	if !n.Snapshotted() {
		return blob.Hash{}, false
	}
	return n.content, true
}

// Options configures a new Tree.
type Options struct {
	Blobs  *blob.Store      // shared blob store; created if nil
	Author string           // recorded on snapshots
	Now    func() time.Time // clock; time.Now if nil
}

// Tree owns every version node ever created for one file.
type Tree struct {
	blobs  *blob.Store
	author string
	now    func() time.Time

	nodes        []*Node // arena; nodes[i].ID == i
	root         *Node
	active       *Node
	lastModified time.Time
}

// New creates a tree with a root node that is immediately snapshotted
// with an empty message and empty content.
func New(opts Options) (*Tree, error) {
	if opts.Blobs == nil {
		opts.Blobs = blob.NewStore()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	t := &Tree{
		blobs:  opts.Blobs,
		author: opts.Author,
		now:    opts.Now,
	}
	root := t.newNode(nil)
	t.root = root
	t.active = root
	t.lastModified = root.CreatedAt
	if err := t.Snapshot(""); err != nil {
		return nil, err
	}
	return t, nil
}

// newNode allocates the next node in the arena.
func (t *Tree) newNode(parent *Node) *Node {
	n := &Node{
		ID:        len(t.nodes),
		CreatedAt: t.now(),
		Parent:    parent,
	}
	t.nodes = append(t.nodes, n)
	return n
}

// Read returns the content of the active node.
func (t *Tree) Read() (string, error) {
	data, err := t.nodeContent(t.active)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Insert appends text to the active node's content. If the active node
// is already a snapshot, a new child node is created holding the old
// content plus text, and it becomes the active node.
func (t *Tree) Insert(text string) error {
	t.lastModified = t.now()
	if !t.active.Snapshotted() {
		t.active.buf = append(t.active.buf, text...)
		return nil
	}

	base, err := t.nodeContent(t.active)
	if err != nil {
		return err
	}
	child := t.branch(t.active)
	child.buf = append(append(child.buf, base...), text...)
	return nil
}

// Update replaces the active node's content with text. If the active
// node is already a snapshot, a new child node is created holding
// exactly text, and it becomes the active node.
func (t *Tree) Update(text string) error {
	t.lastModified = t.now()
	if !t.active.Snapshotted() {
		t.active.buf = append(t.active.buf[:0], text...)
		return nil
	}

	child := t.branch(t.active)
	child.buf = append(child.buf, text...)
	return nil
}

// branch creates a fresh child of parent and makes it active.
func (t *Tree) branch(parent *Node) *Node {
	child := t.newNode(parent)
	parent.Children = append(parent.Children, child)
	t.active = child
	return child
}

// Snapshot fixes the active node's content and message forever. The
// content moves into the blob store and the node keeps its hash.
func (t *Tree) Snapshot(message string) error {
	if t.active.Snapshotted() {
		return verr.Conflictf("version %d is already a snapshot", t.active.ID)
	}

	hash, err := t.blobs.Put(t.active.buf)
	if err != nil {
		return err
	}

	now := t.now()
	t.active.content = hash
	t.active.buf = nil
	t.active.SnapshottedAt = now
	t.active.Message = message
	t.active.Author = t.author
	t.lastModified = now
	return nil
}

// Rollback moves the active reference to the current active node's
// parent.
func (t *Tree) Rollback() error {
	if t.active.Parent == nil {
		return verr.Statef("no parent version to roll back to")
	}
	t.active = t.active.Parent
	t.lastModified = t.now()
	return nil
}

// Checkout moves the active reference directly to the node with the
// given id, which need not be an ancestor of the current active node.
func (t *Tree) Checkout(id int) error {
	if id < 0 || id >= len(t.nodes) {
		return verr.Rangef("version id %d not in [0, %d)", id, len(t.nodes))
	}
	t.active = t.nodes[id]
	t.lastModified = t.now()
	return nil
}

// History returns the snapshotted nodes on the path from the root to
// the active node, in root-first order. An empty result is valid.
func (t *Tree) History() []*Node {
	var path []*Node
	for n := t.active; n != nil; n = n.Parent {
		path = append(path, n)
	}

	out := make([]*Node, 0, len(path))
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].Snapshotted() {
			out = append(out, path[i])
		}
	}
	return out
}

// Active returns the current active node.
func (t *Tree) Active() *Node {
	return t.active
}

// LastModified returns the time of the last content, snapshot, or
// checkout operation on the tree.
func (t *Tree) LastModified() time.Time {
	return t.lastModified
}

// Versions returns the total number of nodes ever created.
func (t *Tree) Versions() int {
	return len(t.nodes)
}

// nodeContent resolves a node's content, through the blob store for
// snapshotted nodes.
func (t *Tree) nodeContent(n *Node) ([]byte, error) {
	if n.Snapshotted() {
		return t.blobs.Get(n.content)
	}
	return n.buf, nil
}
