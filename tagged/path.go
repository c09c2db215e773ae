package tagged

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// a segment named a key or index the tree does not have
	ErrPathNotFound = errors.New("path segment not found")
	// a segment that cannot apply to the node it reached
	ErrPathSyntax = errors.New("malformed path segment")
)

// GetByPath walks a still-wrapped value tree with a dotted path like
// "$.foo.0.bar" and decodes whatever the path lands on. Any miss, including
// an out-of-range or non-numeric array index, comes back as nil.
func GetByPath(root *Value, path string) any {
	out, err := ResolvePath(root, path)
	if err != nil {
		return nil
	}
	return out
}

// ResolvePath is GetByPath with the failure mode preserved: ErrPathNotFound
// for a missing key or out-of-range index, ErrPathSyntax for a segment that
// is not a valid index on an array node.
func ResolvePath(root *Value, path string) (any, error) {
	segments := strings.Split(path, ".")
	if len(segments) > 0 && segments[0] == "$" {
		segments = segments[1:]
	}

	cur := root
	for _, seg := range segments {
		if cur == nil {
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, seg)
		}
		switch cur.kind {
		case KindMap:
			next, ok := lookup(cur.pairs, seg)
			if !ok {
				return nil, fmt.Errorf("%w: key %q", ErrPathNotFound, seg)
			}
			cur = next
		case KindArray:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("%w: array index %q", ErrPathSyntax, seg)
			}
			if idx >= len(cur.items) {
				return nil, fmt.Errorf("%w: array index %d of %d", ErrPathNotFound, idx, len(cur.items))
			}
			cur = cur.items[idx]
		default:
			// a leaf with path still to walk
			return nil, fmt.Errorf("%w: %q past a leaf", ErrPathNotFound, seg)
		}
	}
	return Decode(cur), nil
}

// match on the decoded key, so a Text key compares as its string
func lookup(pairs []Pair, seg string) (*Value, bool) {
	for _, p := range pairs {
		if decodeKey(p.Key) == seg {
			return p.Value, true
		}
	}
	return nil, false
}
