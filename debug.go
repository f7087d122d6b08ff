package faceframe

import (
	"fmt"

	"go.uber.org/zap"
)

// debugLog reports per-frame draw stats at debug level.
func (s *Scene) debugLog(stats renderStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		zap.Int("visited", stats.visited),
		zap.Int("sprites", stats.sprites),
		zap.Int("texts", stats.texts),
		zap.Duration("traversal", stats.traversal),
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("faceframe debug: %s on disposed node %q", op, n.Name))
	}
}

const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugTreeWarnings walks the tree and returns a warning for every node that
// sits deeper than debugMaxTreeDepth or has more than debugMaxChildCount
// children.
func debugTreeWarnings(root *Node) []string {
	var out []string
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if depth > debugMaxTreeDepth {
			out = append(out, fmt.Sprintf("tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name))
			return
		}
		if len(n.children) > debugMaxChildCount {
			out = append(out, fmt.Sprintf("node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount))
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(root, 1)
	return out
}

// CheckTree logs structural warnings for the scene tree and returns how
// many were found.
func (s *Scene) CheckTree() int {
	warnings := debugTreeWarnings(s.root)
	for _, w := range warnings {
		s.logger.Warn("scene tree", zap.String("warning", w))
	}
	return len(warnings)
}
