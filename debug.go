package canopy

import "time"

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugStats holds per-frame timing. Only populated when Scene.debug is true.
type debugStats struct {
	inputTime   time.Duration
	updateTime  time.Duration
	animTime    time.Duration
	nodeCount   int
	animatorCnt int
}

// debugLog logs the frame's timing at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	Logger().Debug("canopy: frame",
		"input", stats.inputTime,
		"update", stats.updateTime,
		"animators", stats.animTime,
		"total", stats.inputTime+stats.updateTime+stats.animTime,
		"nodes", stats.nodeCount,
		"activeAnimators", stats.animatorCnt,
	)
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("canopy: tree depth exceeds threshold",
			"node", n.name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("canopy: child count exceeds threshold",
			"node", n.name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// countTree returns the number of nodes and of running animators in n's
// subtree.
func countTree(n *Node) (nodes, animators int) {
	nodes = 1
	for k := range n.animators {
		for _, a := range n.animators[k] {
			if a.IsAnimated() {
				animators++
			}
		}
	}
	for _, c := range n.children {
		cn, ca := countTree(c)
		nodes += cn
		animators += ca
	}
	return nodes, animators
}
