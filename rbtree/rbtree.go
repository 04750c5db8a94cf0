// Package rbtree provides a generic, self-balancing, order-statistic
// Red-Black Binary Search Tree.
//
// This package extends bst.Tree, adding automatic balancing by ensuring
// that:
//   - The tree remains approximately balanced, maintaining O(log n)
//     insertions, deletions, and lookups.
//   - No two consecutive red nodes appear in a path.
//   - All paths from the root to leaves contain the same number of black
//     nodes.
//
// Unlike a plain ordered map, rbtree.Tree allows duplicate keys: Insert
// always attaches a new node rather than overwriting an existing one, and
// FindAll enumerates every node sharing a key.
//
// # Key Features
//   - Self-Balancing: Uses Red-Black Tree rules to maintain efficiency.
//   - Order statistics: Count/IndexOf/NodeAt (inherited from bst.Tree) give
//     O(log n) rank and select.
//   - Subtree-scoped queries: FindNearest, FindAll, and CheckStructure each
//     take a leading root node, the same way NodeAt does, so a caller can
//     search or validate a subtree in isolation instead of always starting
//     from the tree's true root.
//   - Hinted insertion: Insert starts its search from a caller-supplied
//     node instead of always walking from the root, for callers that
//     already know roughly where a key belongs.
//   - Generic Support: Works with any key (K) and value (V) types.
//
// # Usage Example
//
//	tree := rbtree.New[int, string](func(a, b int) bool { return a < b })
//	node := tree.Insert(nil, 10, "ten")
//	tree.Insert(node, 20, "twenty")
//	found, ok := tree.Search(10)
//
//	if ok {
//		tree.Prune(found)
//	}
//
// # Safe Inherited Methods from bst.Tree
//
// The following methods are inherited from bst.Tree and can be used safely:
//   - [bst.Tree.Root]: Returns the root node.
//   - [bst.Tree.Search]: Finds a node by key.
//   - [bst.Tree.Successor]: Returns the next in-order node.
//   - [bst.Tree.Predecessor]: Returns the previous in-order node.
//   - [bst.Tree.Min] / [bst.Tree.Max]: Smallest/largest key in a subtree.
//   - [bst.Tree.IndexOf] / [bst.Tree.NodeAt]: Rank and select.
//   - [bst.Tree.IsNil]: Checks if a node is the sentinel nil node.
//   - [bst.Tree.Parent]: Returns the parent of a node.
//
// # Unsafe Inherited Methods from bst.Tree
//
// bst.Tree.Insert and bst.Tree.SetLeft/SetRight/SetParent/SetMetadata are
// still reachable through embedding, but calling them directly on an
// rbtree.Tree can corrupt its balance or counts: Insert is shadowed by this
// package's own hint-aware Insert for that reason. The rest are left
// reachable (unshadowed) for InsertNode/Prune/Clear's own use within
// this package; external callers should stick to the methods documented
// above.
//
// # Limitations
//
//   - Not Thread-Safe – Requires external synchronization for concurrent use.
package rbtree

import (
	"github.com/ordtrees/ordtrees/bst"
)

// Color represents the color of a node in a Red-Black Tree.
//
// Nodes are either:
//   - Red (🟥), indicates a temporary imbalance during insertion/deletion.
//   - Black (⬛), maintains tree balancing properties.
type Color bool

const (
	Red   Color = false // Red-colored node
	Black Color = true  // Black-colored node
)

// String returns a Unicode representation of the node color.
func (c Color) String() string {
	if c == Black {
		return "⬛"
	}
	return "🟥"
}

// Node is an element of a Tree, carrying a key, a value and its color.
type Node[K, V any] = bst.Node[K, V, Color]

// Tree represents a Red-Black Tree, an extension of bst.Tree that
// maintains self-balancing and order-statistic properties.
//
// The tree embeds a generic binary search tree, bst.Tree, using Color as
// the node metadata that tracks whether a node is Red or Black. The size
// field keeps an O(1) total node count alongside bst.Tree's per-subtree
// counts.
type Tree[K, V any] struct {
	*bst.Tree[K, V, Color]
	size int
}

// New creates a new, empty Red-Black Tree ordered by less.
func New[K, V any](less bst.LessFunc[K]) *Tree[K, V] {
	underlying := bst.New[K, V, Color](less)
	underlying.MustSetMetadata(underlying.RootSentinel(), Black)
	underlying.MustSetMetadata(underlying.Sentinel(), Black)
	return &Tree[K, V]{Tree: underlying}
}

// Size returns the total number of nodes currently in the tree, an O(1)
// count maintained alongside Insert and Prune.
func (t *Tree[K, V]) Size() int {
	return t.size
}

// isBlack reports whether n is black, treating the sentinel as black too
// (a nil/absent child never violates the black-height invariant).
func (t *Tree[K, V]) isBlack(n *Node[K, V]) bool {
	return t.IsNil(n) || t.Metadata(n) != Red
}

// isRed reports whether n is a real, red node.
func (t *Tree[K, V]) isRed(n *Node[K, V]) bool {
	return !t.IsNil(n) && t.Metadata(n) == Red
}

// setColor sets n's color, a no-op if n is the leaf-sentinel.
func (t *Tree[K, V]) setColor(n *Node[K, V], c Color) {
	t.SetMetadata(n, c)
}

func (t *Tree[K, V]) keyEq(a, b K) bool {
	return !t.Less(a, b) && !t.Less(b, a)
}

// InsertNode attaches an already-allocated, detached node to the tree,
// starting its search from hint (any node already in the tree, or the
// tree's root-sentinel/nil to search from the top).
//
// hint is a hint, not a requirement: if node doesn't actually belong under
// hint, InsertNode detects that by walking back up hint's ancestors and
// restarts the search from the true root. A caller that repeatedly inserts
// nearby keys (e.g. bulk-loading sorted data) can pass the previously
// inserted node as hint to turn each insertion's search into a short local
// walk instead of a full root-to-leaf descent.
//
// Returns false without modifying the tree if node is already attached to
// some tree.
func (t *Tree[K, V]) InsertNode(hint, node *Node[K, V]) bool {
	if hint == nil {
		hint = t.RootSentinel()
	}
	if t.InTree(node) {
		return false
	}

	rootSentinel := t.RootSentinel()
	if t.IsRootSentinel(hint) {
		if t.IsNil(t.Left(rootSentinel)) {
			leaf := t.Sentinel()
			t.SetParent(node, rootSentinel)
			t.SetLeft(rootSentinel, node)
			t.SetLeft(node, leaf)
			t.SetRight(node, leaf)
			t.SetCount(node, 1)
			t.setColor(node, Black)
			t.size++
			return true
		}
		hint = t.Left(rootSentinel)
	}

	var cmpNeg bool
	leftmost, rightmost := true, true
	pos := hint
	var next *Node[K, V]
	for {
		if t.Less(t.Key(node), t.Key(pos)) {
			cmpNeg = true
			rightmost = false
			next = t.Left(pos)
		} else {
			cmpNeg = false
			leftmost = false
			next = t.Right(pos)
		}
		if t.IsNil(next) {
			break
		}
		pos = next
	}

	// If the original hint was not the root of the tree, and the descent
	// was monotonic in the same direction as the hint itself, backtrack up
	// hint's ancestors to make sure hint wasn't simply the wrong spot.
	check := leftmost
	if !cmpNeg {
		check = rightmost
	}
	if !t.IsRootSentinel(t.Parent(hint)) && check {
		parent := t.Parent(hint)
		child := hint
		for {
			var side *Node[K, V]
			if cmpNeg {
				side = t.Right(parent)
			} else {
				side = t.Left(parent)
			}
			if side == child {
				if cmpNeg == t.Less(t.Key(node), t.Key(parent)) {
					// Hint was wrong. Start over from the true root.
					root := parent
					for !t.IsRootSentinel(t.Parent(root)) {
						root = t.Parent(root)
					}
					return t.InsertNode(root, node)
				}
				break
			} else if t.IsRootSentinel(t.Parent(parent)) {
				break
			}
			child = parent
			parent = t.Parent(parent)
		}
	}

	if cmpNeg {
		t.SetLeft(pos, node)
	} else {
		t.SetRight(pos, node)
	}
	t.SetParent(node, pos)
	// next is the leaf-sentinel, reached at the bottom of the descent loop.
	t.SetLeft(node, next)
	t.SetRight(node, next)
	t.SetCount(node, 1)
	t.setColor(node, Red)

	parent := pos
	for !t.IsRootSentinel(parent) {
		t.AddCount(parent, 1)
		parent = t.Parent(parent)
	}
	t.insertFixup(pos)
	t.setColor(t.Left(rootSentinel), Black)
	t.size++
	return true
}

// Insert allocates a new node for key/value and attaches it to the tree,
// starting its search from hint (see InsertNode; pass nil to always search
// from the true root).
//
// Unlike a plain ordered map, duplicate keys are permitted: a new node
// with an already-present key is inserted to the right of its equal-keyed
// peers. Use FindAll to enumerate a key's duplicates. Returns the new
// node.
func (t *Tree[K, V]) Insert(hint *Node[K, V], key K, value V) *Node[K, V] {
	n := bst.NewNode[K, V, Color](key, value)
	t.InsertNode(hint, n)
	return n
}

// insertFixup restores the red-black invariants after InsertNode has
// linked in a new red node. current is that node's parent, itself red
// (a black parent needs no fixing).
func (t *Tree[K, V]) insertFixup(current *Node[K, V]) {
	for t.isRed(current) {
		parent := t.Parent(current)

		if t.Right(parent) == current {
			if t.isRed(t.Left(parent)) {
				t.setColor(t.Left(parent), Black)
				t.setColor(current, Black)
				t.setColor(parent, Red)
				current = t.Parent(parent)
				continue
			}
			if t.isRed(t.Left(current)) {
				t.RotateRight(current)
			}
			t.RotateLeft(parent)
			t.setColor(parent, Red)
			t.setColor(t.Parent(parent), Black)
			return
		}

		// mirror image: parent is to the right of its own parent
		if t.isRed(t.Right(parent)) {
			t.setColor(t.Right(parent), Black)
			t.setColor(current, Black)
			t.setColor(parent, Red)
			current = t.Parent(parent)
			continue
		}
		if t.isRed(t.Right(current)) {
			t.RotateLeft(current)
		}
		t.RotateRight(parent)
		t.setColor(parent, Red)
		t.setColor(t.Parent(parent), Black)
		return
	}
}

// Prune removes node from the tree, rebalancing as needed. Returns false
// without modifying the tree if node isn't currently attached to one.
//
// If node has two children, an in-order neighbor is taken from the larger
// of its two subtrees (the predecessor if the left subtree outweighs the
// right, otherwise the successor). That neighbor is unlinked from its own
// position with pruneLeaf and then spliced into node's position, taking
// over node's links, color and count; node itself ends up detached.
func (t *Tree[K, V]) Prune(current *Node[K, V]) bool {
	if t.Count(current) == 0 {
		return false
	}

	if t.IsNil(t.Left(current)) || t.IsNil(t.Right(current)) {
		t.pruneLeaf(current)
	} else {
		var successor *Node[K, V]
		if t.Count(t.Left(current)) > t.Count(t.Right(current)) {
			successor = t.Predecessor(current)
		} else {
			successor = t.Successor(current)
		}
		t.pruneLeaf(successor)

		right := t.Right(current)
		t.SetRight(successor, right)
		if !t.IsNil(right) {
			t.SetParent(right, successor)
		}

		left := t.Left(current)
		t.SetLeft(successor, left)
		if !t.IsNil(left) {
			t.SetParent(left, successor)
		}

		parent := t.Parent(current)
		t.SetParent(successor, parent)
		if t.Left(parent) == current {
			t.SetLeft(parent, successor)
		} else {
			t.SetRight(parent, successor)
		}
		t.setColor(successor, t.Metadata(current))
		t.SetCount(successor, t.Count(current))
	}

	t.SetLeft(current, nil)
	t.SetRight(current, nil)
	t.SetParent(current, nil)
	t.SetMetadata(current, Black)
	t.SetCount(current, 0)
	t.size--
	return true
}

// pruneLeaf removes node, which must have at most one (necessarily red)
// child, and restores the red-black invariants. This is the real work of
// node deletion; Prune's two-child case reduces to this by running it on
// an in-order neighbor, which is then spliced into the removed node's place.
func (t *Tree[K, V]) pruneLeaf(node *Node[K, V]) {
	parent := t.Parent(node)
	leftSide := t.Left(parent) == node
	var sentinel *Node[K, V]
	if t.IsNil(t.Left(node)) {
		sentinel = t.Left(node)
	} else {
		sentinel = t.Right(node)
	}

	for current := node; !t.IsRootSentinel(current); current = t.Parent(current) {
		t.AddCount(current, -1)
	}

	if t.isRed(node) {
		if leftSide {
			t.SetLeft(parent, sentinel)
		} else {
			t.SetRight(parent, sentinel)
		}
		return
	}

	// node is black here; if it has a child, that child is red.
	if t.Left(node) != sentinel {
		child := t.Left(node)
		t.setColor(child, Black)
		t.SetParent(child, parent)
		if leftSide {
			t.SetLeft(parent, child)
		} else {
			t.SetRight(parent, child)
		}
		return
	}
	if t.Right(node) != sentinel {
		child := t.Right(node)
		t.setColor(child, Black)
		t.SetParent(child, parent)
		if leftSide {
			t.SetLeft(parent, child)
		} else {
			t.SetRight(parent, child)
		}
		return
	}

	// node is a black leaf: removing it shortens this path by one black
	// node, so the tree needs rebalancing before it can go.
	if leftSide {
		t.SetLeft(parent, sentinel)
	} else {
		t.SetRight(parent, sentinel)
	}

	var sibling *Node[K, V]
	if leftSide {
		sibling = t.Right(parent)
	} else {
		sibling = t.Left(parent)
	}
	current := node

	for t.isBlack(current) && !t.IsRootSentinel(parent) {
		if t.isRed(sibling) {
			// case 1: a red sibling can be rotated into our path for
			// spare red nodes to recolor.
			t.setColor(parent, Red)
			t.setColor(sibling, Black)
			if leftSide {
				t.RotateLeft(parent)
				sibling = t.Right(parent)
			} else {
				t.RotateRight(parent)
				sibling = t.Left(parent)
			}
			continue
		}

		if t.isBlack(t.Right(sibling)) && t.isBlack(t.Left(sibling)) {
			// case 2: sibling's subtree can absorb the imbalance by
			// turning red; move the problem up to the parent.
			t.setColor(sibling, Red)
			current = parent
			parent = t.Parent(current)
			leftSide = t.Left(parent) == current
			if leftSide {
				sibling = t.Right(parent)
			} else {
				sibling = t.Left(parent)
			}
			continue
		}

		// sibling is black with at least one red child.
		if leftSide {
			if t.isBlack(t.Right(sibling)) {
				// case 3: rotate the red child into place first.
				t.RotateRight(sibling)
				sibling = t.Right(parent)
			}
			// case 4: final rotation restores the black count on our side.
			t.setColor(t.Right(sibling), Black)
			t.setColor(sibling, t.Metadata(parent))
			t.setColor(parent, Black)
			t.RotateLeft(parent)
			return
		}
		if t.isBlack(t.Left(sibling)) {
			t.RotateLeft(sibling)
			sibling = t.Left(parent)
		}
		t.setColor(t.Left(sibling), Black)
		t.setColor(sibling, t.Metadata(parent))
		t.setColor(parent, Black)
		t.RotateRight(parent)
		return
	}

	t.setColor(current, Black)
}

// FindNearest locates key in the subtree rooted at root, returning the exact
// match if one exists, or otherwise the node nearest to it in sort order.
// root may be the tree's true root (t.Root()) to search the whole tree, or
// any subtree root to scope the search, the same way NodeAt scopes to a
// subtree. cmp reports which: 0 for an exact match, negative if key would
// sort to the left of the returned node, positive if it would sort to the
// right. On an empty (sub)tree it returns the sentinel.
func (t *Tree[K, V]) FindNearest(root *Node[K, V], key K) (node *Node[K, V], cmp int) {
	nearest := t.Sentinel()
	n := root
	for !t.IsNil(n) {
		nearest = n
		switch {
		case t.Less(key, t.Key(n)):
			cmp = -1
			n = t.Left(n)
		case t.Less(t.Key(n), key):
			cmp = 1
			n = t.Right(n)
		default:
			return n, 0
		}
	}
	return nearest, cmp
}

// FindAll locates every node equal to key within the subtree rooted at root.
// root may be the tree's true root (t.Root()) to search the whole tree, or
// any subtree root to scope the search, the same way NodeAt scopes to a
// subtree. On a match it returns found=true along with the first and last
// such node (in-order, so iterating with Successor from first reaches last
// after count-1 steps) and their count.
//
// On a miss it still returns the bracketing neighbors of key: if key sorts
// before the nearest node visited during the search, first is that node's
// predecessor and last is the node itself; if it sorts after, first is the
// node and last is its successor. A caller could insert key between them.
// The neighbor walks via real parent pointers and so may land outside the
// searched subtree when root is not the tree's true root. found is false
// and count is 0 in that case.
func (t *Tree[K, V]) FindAll(root *Node[K, V], key K) (first, last *Node[K, V], count int, found bool) {
	nearest := t.Sentinel()
	var cmp int
	n := root
	for !t.IsNil(n) {
		nearest = n
		switch {
		case t.Less(key, t.Key(n)):
			cmp = -1
			n = t.Left(n)
		case t.Less(t.Key(n), key):
			cmp = 1
			n = t.Right(n)
		default:
			cmp = 0
			goto matched
		}
	}
	if cmp < 0 {
		first = t.Predecessor(nearest)
	} else {
		first = nearest
	}
	if cmp > 0 {
		last = t.Successor(nearest)
	} else {
		last = nearest
	}
	return first, last, 0, false

matched:
	count = 1
	first = n
	for test := t.Left(first); !t.IsNil(test); {
		if t.keyEq(t.Key(test), key) {
			first = test
			count += 1 + t.Count(t.Right(test))
			test = t.Left(test)
		} else {
			test = t.Right(test)
		}
	}
	last = n
	for test := t.Right(last); !t.IsNil(test); {
		if t.keyEq(t.Key(test), key) {
			last = test
			count += 1 + t.Count(t.Left(test))
			test = t.Right(test)
		} else {
			test = t.Left(test)
		}
	}
	return first, last, count, true
}

// Clear detaches every node from the tree in post-order (so a destroy
// callback is free to deallocate/recycle a node's containing struct once
// called), leaving it empty. destroy may be nil.
func (t *Tree[K, V]) Clear(destroy func(K, V)) {
	rootSentinel := t.RootSentinel()
	if t.IsNil(t.Left(rootSentinel)) {
		return
	}
	current := t.Left(rootSentinel)
	var next *Node[K, V]
	var fromLeft bool

checkLeft:
	if !t.IsNil(t.Left(current)) {
		current = t.Left(current)
		goto checkLeft
	}
checkRight:
	if !t.IsNil(t.Right(current)) {
		current = t.Right(current)
		goto checkLeft
	}
zapCurrent:
	next = t.Parent(current)
	fromLeft = t.Left(next) == current
	t.SetCount(current, 0)
	key, value := t.Key(current), t.Value(current)
	t.SetLeft(current, nil)
	t.SetRight(current, nil)
	t.SetParent(current, nil)
	if destroy != nil {
		destroy(key, value)
	}
	current = next
	if current == rootSentinel {
		goto done
	} else if fromLeft {
		goto checkRight
	} else {
		goto zapCurrent
	}
done:
	t.SetLeft(rootSentinel, t.Sentinel())
	t.size = 0
}
