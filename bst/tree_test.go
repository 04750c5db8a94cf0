package bst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intLess(a, b int) bool { return a < b }

func TestNew(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	assert.True(t, tr.IsNil(tr.Root()))
	assert.True(t, tr.IsRootSentinel(tr.RootSentinel()))
	assert.Equal(t, 0, tr.Count(tr.Root()))
}

func TestTree_Insert(t *testing.T) {
	tr := New[int, string, struct{}](intLess)

	n5, inserted := tr.Insert(5, "five")
	require.True(t, inserted)
	assert.Equal(t, 1, tr.Count(n5))
	assert.True(t, tr.IsRootSentinel(tr.Parent(n5)))

	n3, inserted := tr.Insert(3, "three")
	require.True(t, inserted)
	assert.Equal(t, n5, tr.Parent(n3))
	assert.Equal(t, 2, tr.Count(n5))

	n7, inserted := tr.Insert(7, "seven")
	require.True(t, inserted)
	assert.Equal(t, 3, tr.Count(n5))
	assert.Equal(t, n3, tr.Left(n5))
	assert.Equal(t, n7, tr.Right(n5))

	// Re-inserting an existing key updates the value, not the shape.
	same, inserted := tr.Insert(3, "tres")
	assert.False(t, inserted)
	assert.Equal(t, n3, same)
	assert.Equal(t, "tres", tr.Value(n3))
	assert.Equal(t, 3, tr.Count(n5))
}

func TestTree_Search(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	tr.Insert(5, "five")
	tr.Insert(3, "three")
	tr.Insert(7, "seven")

	found, ok := tr.Search(3)
	require.True(t, ok)
	assert.Equal(t, "three", tr.Value(found))

	_, ok = tr.Search(42)
	assert.False(t, ok)
}

func TestTree_Contains(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	n5, _ := tr.Insert(5, "five")

	assert.True(t, tr.Contains(n5))
}

func TestTree_MinMax(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	tr.Insert(5, "five")
	tr.Insert(3, "three")
	tr.Insert(7, "seven")
	tr.Insert(1, "one")
	tr.Insert(9, "nine")

	assert.Equal(t, 1, tr.Key(tr.Min(tr.Root())))
	assert.Equal(t, 9, tr.Key(tr.Max(tr.Root())))
}

func TestTree_IsLeafInternalFullUnary(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	n5, _ := tr.Insert(5, "five")
	n3, _ := tr.Insert(3, "three")
	tr.Insert(7, "seven")
	n1, _ := tr.Insert(1, "one")

	assert.True(t, tr.IsFull(n5))
	assert.True(t, tr.IsInternal(n5))
	assert.False(t, tr.IsLeaf(n5))

	assert.True(t, tr.IsUnary(n3))
	assert.True(t, tr.IsInternal(n3))

	assert.True(t, tr.IsLeaf(n1))
	assert.False(t, tr.IsInternal(n1))
	assert.False(t, tr.IsFull(n1))
}

func TestTree_Depth(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	n5, _ := tr.Insert(5, "five")
	n3, _ := tr.Insert(3, "three")
	n1, _ := tr.Insert(1, "one")

	assert.Equal(t, 0, tr.Depth(n5))
	assert.Equal(t, 1, tr.Depth(n3))
	assert.Equal(t, 2, tr.Depth(n1))
}

func TestTree_Sibling(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	n5, _ := tr.Insert(5, "five")
	n3, _ := tr.Insert(3, "three")
	n7, _ := tr.Insert(7, "seven")

	assert.Equal(t, n7, tr.Sibling(n3))
	assert.Equal(t, n3, tr.Sibling(n7))
	assert.True(t, tr.IsNil(tr.Sibling(n5)))
}

func TestTree_PredecessorSuccessor(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	keys := []int{5, 3, 7, 1, 4, 6, 8}
	nodes := make(map[int]*Node[int, string, struct{}])
	for _, k := range keys {
		n, _ := tr.Insert(k, "")
		nodes[k] = n
	}

	assert.True(t, tr.IsNil(tr.Predecessor(nodes[1])))
	assert.Equal(t, 1, tr.Key(tr.Predecessor(nodes[3])))
	assert.Equal(t, 4, tr.Key(tr.Predecessor(nodes[5])))
	assert.Equal(t, 6, tr.Key(tr.Predecessor(nodes[7])))

	assert.True(t, tr.IsNil(tr.Successor(nodes[8])))
	assert.Equal(t, 4, tr.Key(tr.Successor(nodes[3])))
	assert.Equal(t, 6, tr.Key(tr.Successor(nodes[5])))
	assert.Equal(t, 7, tr.Key(tr.Successor(nodes[6])))
}

func TestTree_RotateLeft(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	n5, _ := tr.Insert(5, "")
	n3, _ := tr.Insert(3, "")
	n7, _ := tr.Insert(7, "")
	n6, _ := tr.Insert(6, "")
	n8, _ := tr.Insert(8, "")

	tr.RotateLeft(n5)

	assert.Equal(t, n7, tr.Root())
	assert.Equal(t, n5, tr.Left(n7))
	assert.Equal(t, n8, tr.Right(n7))
	assert.Equal(t, n3, tr.Left(n5))
	assert.Equal(t, n6, tr.Right(n5))
	assert.Equal(t, n7, tr.Parent(n5))
	assert.Equal(t, n5, tr.Parent(n6))

	assert.Equal(t, 5, tr.Count(n7))
	assert.Equal(t, 3, tr.Count(n5))
	assert.Equal(t, 1, tr.Count(n3))
	assert.Equal(t, 1, tr.Count(n6))
	assert.Equal(t, 1, tr.Count(n8))

	require.NoError(t, tr.IsTreeValid())
}

func TestTree_RotateRight(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	n5, _ := tr.Insert(5, "")
	n3, _ := tr.Insert(3, "")
	n7, _ := tr.Insert(7, "")
	n2, _ := tr.Insert(2, "")
	n4, _ := tr.Insert(4, "")

	tr.RotateRight(n5)

	assert.Equal(t, n3, tr.Root())
	assert.Equal(t, n2, tr.Left(n3))
	assert.Equal(t, n5, tr.Right(n3))
	assert.Equal(t, n4, tr.Left(n5))
	assert.Equal(t, n7, tr.Right(n5))

	assert.Equal(t, 5, tr.Count(n3))
	assert.Equal(t, 3, tr.Count(n5))

	require.NoError(t, tr.IsTreeValid())
}

func TestTree_IndexOfNodeAt(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	keys := []int{5, 3, 7, 1, 4, 6, 8}
	nodes := make(map[int]*Node[int, string, struct{}])
	for _, k := range keys {
		n, _ := tr.Insert(k, "")
		nodes[k] = n
	}

	sorted := []int{1, 3, 4, 5, 6, 7, 8}
	for i, k := range sorted {
		assert.Equal(t, i, tr.IndexOf(nodes[k]))
		assert.Equal(t, nodes[k], tr.NodeAt(tr.Root(), i))
	}

	assert.Nil(t, tr.NodeAt(tr.Root(), -1))
	assert.Nil(t, tr.NodeAt(tr.Root(), len(sorted)))
}

func TestTree_IsTreeValid(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	require.NoError(t, tr.IsTreeValid())

	tr.Insert(5, "")
	tr.Insert(3, "")
	tr.Insert(7, "")
	require.NoError(t, tr.IsTreeValid())
}

func TestTree_String_empty(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	assert.Equal(t, "Empty Tree", tr.String())
}

func TestTree_String_nonEmpty(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	tr.Insert(5, "five")
	tr.Insert(3, "three")

	s := tr.String()
	assert.Contains(t, s, "5: five")
	assert.Contains(t, s, "3: three")
}

func TestTree_InTree(t *testing.T) {
	tr := New[int, string, struct{}](intLess)
	n, _ := tr.Insert(5, "")
	assert.True(t, tr.InTree(n))

	detached := NewNode[int, string, struct{}](9, "nine")
	assert.False(t, tr.InTree(detached))
}
