package model

import (
	"errors"
	"fmt"
)

// TreeEnsemble is a gradient-boosted regression forest exported from the
// training run. Prediction sums the base score with each tree's leaf value.
type TreeEnsemble struct {
	TargetTransform string  `json:"target_transform"`
	BaseScore       float64 `json:"base_score"`
	Trees           []Tree  `json:"trees"`
}

// Tree is a flattened binary decision tree. Node 0 is the root; internal
// nodes route on x[Feature] < Threshold (left) or >= Threshold (right).
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// TreeNode is either an internal split or, when Leaf is set, a terminal
// value contribution.
type TreeNode struct {
	Feature   int      `json:"feature,omitempty"`
	Threshold float64  `json:"threshold,omitempty"`
	Left      int      `json:"left,omitempty"`
	Right     int      `json:"right,omitempty"`
	Leaf      *float64 `json:"leaf,omitempty"`
}

// Predict returns the raw ensemble output (in target-transform space) for
// a feature vector of the given expected width.
func (e *TreeEnsemble) Predict(x []float64, width int) (float64, error) {
	if len(x) != width {
		return 0, fmt.Errorf("%w: got %d features, model expects %d", ErrShapeMismatch, len(x), width)
	}
	sum := e.BaseScore
	for i := range e.Trees {
		leaf, err := e.Trees[i].evaluate(x)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += leaf
	}
	return sum, nil
}

// evaluate walks the tree from the root to a leaf.
func (t *Tree) evaluate(x []float64) (float64, error) {
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		node := t.Nodes[idx]
		if node.Leaf != nil {
			return *node.Leaf, nil
		}
		if x[node.Feature] < node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return 0, errors.New("cycle detected during traversal")
}

// validate checks node indices and feature references against the column
// count, so a malformed tree fails at load time rather than mid-request.
func (e *TreeEnsemble) validate(columns int) error {
	if len(e.Trees) == 0 {
		return errors.New("ensemble has no trees")
	}
	for ti, tree := range e.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, node := range tree.Nodes {
			if node.Leaf != nil {
				continue
			}
			if node.Feature < 0 || node.Feature >= columns {
				return fmt.Errorf("tree %d node %d splits on feature %d, only %d columns exist",
					ti, ni, node.Feature, columns)
			}
			if node.Left <= 0 || node.Left >= len(tree.Nodes) ||
				node.Right <= 0 || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has out-of-range children", ti, ni)
			}
		}
	}
	return nil
}
