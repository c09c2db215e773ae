package tagged

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Value {
	return Map(
		Pair{Key: Text("a"), Value: Integer(5)},
		Pair{Key: Text("list"), Value: Array(Text("x"), Text("y"))},
		Pair{Key: Text("deep"), Value: Map(
			Pair{Key: Text("addr"), Value: Tag(uint64(TagComponentAddress), Bytes([]byte{0xff}))},
		)},
	)
}

func TestGetByPath(t *testing.T) {
	root := sampleTree()

	assert.Equal(t, int64(5), GetByPath(root, "$.a"))
	assert.Equal(t, "y", GetByPath(root, "list.1"))
	assert.Equal(t, "component_ff", GetByPath(root, "$.deep.addr"))

	// the whole tree when the path is just the root marker
	assert.Equal(t, Decode(root), GetByPath(root, "$"))
}

func TestGetByPathMisses(t *testing.T) {
	root := sampleTree()

	// missing key, out of range index, descent past a leaf: all nil
	assert.Nil(t, GetByPath(root, "$.nope"))
	assert.Nil(t, GetByPath(root, "list.5"))
	assert.Nil(t, GetByPath(root, "a.b"))
	assert.Nil(t, GetByPath(root, "list.x"))
	assert.Nil(t, GetByPath(nil, "$.a"))
}

func TestResolvePathErrors(t *testing.T) {
	root := sampleTree()

	_, err := ResolvePath(root, "$.nope")
	require.ErrorIs(t, err, ErrPathNotFound)

	_, err = ResolvePath(root, "list.5")
	require.ErrorIs(t, err, ErrPathNotFound)

	// a non-numeric or negative segment on an array is a syntax problem,
	// not a miss
	_, err = ResolvePath(root, "list.x")
	require.ErrorIs(t, err, ErrPathSyntax)

	_, err = ResolvePath(root, "list.-1")
	require.ErrorIs(t, err, ErrPathSyntax)

	got, err := ResolvePath(root, "deep.addr")
	require.NoError(t, err)
	assert.Equal(t, "component_ff", got)
}
