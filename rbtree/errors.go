package rbtree

import "github.com/pkg/errors"

// Sentinel errors identifying which structural invariant CheckStructure
// found broken. Use errors.Is against these; CheckStructure wraps a
// violation found at a node with that node's key for diagnostics, and
// returns root-sentinel and leaf-sentinel violations unwrapped.
var (
	ErrInvalidRoot     = errors.New("root-sentinel is malformed")
	ErrInvalidSentinel = errors.New("leaf-sentinel is malformed")
	ErrInvalidNode     = errors.New("node is not fully attached to the tree")
	ErrInvalidCount    = errors.New("subtree count does not match its children")
	ErrInvalidOrder    = errors.New("node violates binary-search-tree ordering")
	ErrInvalidColor    = errors.New("node violates a red-black coloring invariant")
)

// newStructureError wraps cause with the key of the node where the
// violation was found, so callers printing the error see both what broke
// and roughly where.
func newStructureError(cause error, key any) error {
	return errors.Wrapf(cause, "at key %v", key)
}

// CheckStructure validates the red-black and BST invariants of the subtree
// rooted at n. Passing t.RootSentinel() validates the whole tree: sentinel
// wiring, BST key order, no red node with a red child, and equal
// black-height on every root-to-leaf path, then descends into the real
// root. Passing any other node — a subtree root returned by Search, NodeAt,
// or a traversal method — validates just that subtree in isolation, the
// same way NodeAt scopes its indexing to a subtree, skipping the
// sentinel-wiring checks entirely. Returns nil if valid, or the first
// violation found, wrapped with errors.Is-compatible context (see the Err*
// sentinels above).
func (t *Tree[K, V]) CheckStructure(n *Node[K, V]) error {
	if t.IsRootSentinel(n) {
		if t.isRed(n) || t.isRed(t.Left(n)) || t.Count(n) != 0 || t.Count(t.Right(n)) != 0 {
			return ErrInvalidRoot
		}

		sentinel := t.Sentinel()
		rootRight := t.Right(n)
		if t.Count(rootRight) != 0 || t.isRed(rootRight) ||
			t.Left(rootRight) != sentinel || t.Right(rootRight) != sentinel {
			return ErrInvalidSentinel
		}

		if t.Left(n) == rootRight {
			return nil // empty tree
		}
		if t.Parent(t.Left(n)) != n {
			return ErrInvalidRoot
		}
		n = t.Left(n)
	}

	_, err := t.checkSubtree(n)
	return err
}

// checkSubtree recursively validates the subtree rooted at n, returning its
// black-height on success.
func (t *Tree[K, V]) checkSubtree(n *Node[K, V]) (blackHeight int, err error) {
	if n == nil || t.Parent(n) == nil || t.Left(n) == nil || t.Right(n) == nil {
		return 0, ErrInvalidNode
	}
	if t.Count(n) == 0 {
		return 0, newStructureError(ErrInvalidNode, t.Key(n))
	}
	if t.Count(n) != t.Count(t.Left(n))+t.Count(t.Right(n))+1 {
		return 0, newStructureError(ErrInvalidCount, t.Key(n))
	}

	var leftBlack, rightBlack int
	if !t.IsNil(t.Left(n)) {
		left := t.Left(n)
		if t.Parent(left) != n {
			return 0, newStructureError(ErrInvalidNode, t.Key(n))
		}
		if t.isRed(n) && t.isRed(left) {
			return 0, newStructureError(ErrInvalidColor, t.Key(n))
		}
		if t.Less(t.Key(n), t.Key(left)) {
			return 0, newStructureError(ErrInvalidOrder, t.Key(n))
		}
		leftBlack, err = t.checkSubtree(left)
		if err != nil {
			return 0, err
		}
	}
	if !t.IsNil(t.Right(n)) {
		right := t.Right(n)
		if t.Parent(right) != n {
			return 0, newStructureError(ErrInvalidNode, t.Key(n))
		}
		if t.isRed(n) && t.isRed(right) {
			return 0, newStructureError(ErrInvalidColor, t.Key(n))
		}
		if t.Less(t.Key(right), t.Key(n)) {
			return 0, newStructureError(ErrInvalidOrder, t.Key(n))
		}
		rightBlack, err = t.checkSubtree(right)
		if err != nil {
			return 0, err
		}
	}
	if leftBlack != rightBlack {
		return 0, newStructureError(ErrInvalidColor, t.Key(n))
	}

	blackHeight = leftBlack
	if t.isBlack(n) {
		blackHeight++
	}
	return blackHeight, nil
}
