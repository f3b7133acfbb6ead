package model

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
)

// RegressionTree is a CART-style regression tree. Splits minimize the
// squared error of the children; leaves predict the mean target of their
// samples. Fields are exported so the trained tree gob-encodes.
type RegressionTree struct {
	MaxDepth        int // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit int // minimum samples to attempt a split
	MinSamplesLeaf  int // minimum samples required in each leaf
	MaxFeatures     int // 0 => use all features, >0 => sample this many per split
	Seed            int64

	Root *TreeNode
}

// TreeNode holds one node of the fitted tree.
type TreeNode struct {
	Leaf      bool
	Feature   int
	Threshold float64 // numeric split: x <= Threshold => left
	Cat       bool    // categorical equality split: x == Threshold => left
	Left      *TreeNode
	Right     *TreeNode

	N     int
	Value float64 // leaf prediction (mean of samples)
}

// TreeOption is functional config for RegressionTree.
type TreeOption func(*RegressionTree)

func WithMaxDepth(d int) TreeOption        { return func(t *RegressionTree) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) TreeOption { return func(t *RegressionTree) { t.MinSamplesSplit = n } }
func WithMinSamplesLeaf(n int) TreeOption  { return func(t *RegressionTree) { t.MinSamplesLeaf = n } }
func WithMaxFeatures(k int) TreeOption     { return func(t *RegressionTree) { t.MaxFeatures = k } }
func WithTreeSeed(seed int64) TreeOption   { return func(t *RegressionTree) { t.Seed = seed } }

// NewRegressionTree returns a tree with sensible defaults.
func NewRegressionTree(opts ...TreeOption) *RegressionTree {
	t := &RegressionTree{
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Seed:            1,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *RegressionTree) Name() string { return RegressionTreeName }

// Fit trains the tree on X (n x p) and continuous targets y.
// Categorical features should be encoded as small integers; the tree then
// also considers equality splits on them.
func (t *RegressionTree) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("tree: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("tree: X and y length mismatch")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("tree: inconsistent number of features in X rows")
		}
	}

	idx := make([]int, n)
	for i := 0; i < n; i++ {
		idx[i] = i
	}
	rnd := rand.New(rand.NewSource(t.Seed))
	t.Root = t.buildNode(X, y, idx, 0, p, rnd)
	return nil
}

// Predict returns the leaf value for each row of X.
func (t *RegressionTree) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range X {
		out[i] = t.predictOne(X[i])
	}
	return out
}

func (t *RegressionTree) predictOne(x []float64) float64 {
	node := t.Root
	if node == nil {
		return 0
	}
	for !node.Leaf {
		val := x[node.Feature]
		goLeft := val <= node.Threshold
		if node.Cat {
			goLeft = val == node.Threshold
		}
		if goLeft {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// splitCandidate holds the best split found for a single feature.
type splitCandidate struct {
	gain      float64
	feature   int
	threshold float64
	cat       bool
	leftIdx   []int
	rightIdx  []int
}

// pair is a feature value and its sample index.
type pair struct {
	v float64
	i int
}

func (t *RegressionTree) buildNode(X [][]float64, y []float64, idx []int, depth, p int, rnd *rand.Rand) *TreeNode {
	node := &TreeNode{N: len(idx)}

	mean, sse := meanSSE(y, idx)
	if sse == 0 || len(idx) < t.MinSamplesSplit || (t.MaxDepth > 0 && depth >= t.MaxDepth) {
		node.Leaf = true
		node.Value = mean
		return node
	}

	featIndices := make([]int, p)
	for j := 0; j < p; j++ {
		featIndices[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) {
			featIndices[a], featIndices[b] = featIndices[b], featIndices[a]
		})
		featIndices = featIndices[:t.MaxFeatures]
	}

	// Search each candidate feature concurrently. Results land in fixed
	// slots and are merged in feature order, so equal gains always resolve
	// to the same feature and the fitted tree is reproducible.
	results := make([]splitCandidate, len(featIndices))
	var wg sync.WaitGroup
	for k, f := range featIndices {
		wg.Add(1)
		go func(k, f int) {
			defer wg.Done()
			results[k] = t.bestSplitForFeature(X, y, idx, f, sse)
		}(k, f)
	}
	wg.Wait()

	best := splitCandidate{feature: -1}
	for _, cand := range results {
		if cand.feature >= 0 && cand.gain > best.gain {
			best = cand
		}
	}

	if best.feature < 0 || best.gain <= 0 {
		node.Leaf = true
		node.Value = mean
		return node
	}

	node.Feature = best.feature
	node.Threshold = best.threshold
	node.Cat = best.cat
	node.Left = t.buildNode(X, y, best.leftIdx, depth+1, p, rnd)
	node.Right = t.buildNode(X, y, best.rightIdx, depth+1, p, rnd)
	return node
}

// bestSplitForFeature scans one feature for the split that most reduces the
// children's total squared error relative to the parent's.
func (t *RegressionTree) bestSplitForFeature(X [][]float64, y []float64, idx []int, f int, parentSSE float64) splitCandidate {
	result := splitCandidate{feature: -1}

	vals := make([]pair, 0, len(idx))
	for _, ii := range idx {
		vals = append(vals, pair{X[ii][f], ii})
	}

	// Equality splits when the feature looks like an encoded category:
	// a small set of distinct integer values.
	unique := uniqueValues(vals)
	if len(unique) <= 30 && allIntLike(unique) {
		for _, uv := range unique {
			left := make([]int, 0, len(idx))
			right := make([]int, 0, len(idx))
			for _, pv := range vals {
				if pv.v == uv {
					left = append(left, pv.i)
				} else {
					right = append(right, pv.i)
				}
			}
			if gain, ok := t.splitGain(y, left, right, parentSSE); ok && gain > result.gain {
				result = splitCandidate{gain: gain, feature: f, threshold: uv, cat: true, leftIdx: left, rightIdx: right}
			}
		}
	}

	// Numeric thresholds between consecutive distinct values.
	sort.Slice(vals, func(a, b int) bool { return vals[a].v < vals[b].v })
	for s := 1; s < len(vals); s++ {
		if vals[s].v == vals[s-1].v {
			continue
		}
		thr := (vals[s-1].v + vals[s].v) / 2.0
		left := indices(vals[:s])
		right := indices(vals[s:])
		if gain, ok := t.splitGain(y, left, right, parentSSE); ok && gain > result.gain {
			result = splitCandidate{gain: gain, feature: f, threshold: thr, leftIdx: left, rightIdx: right}
		}
	}
	return result
}

func (t *RegressionTree) splitGain(y []float64, left, right []int, parentSSE float64) (float64, bool) {
	if len(left) < t.MinSamplesLeaf || len(right) < t.MinSamplesLeaf {
		return 0, false
	}
	_, lSSE := meanSSE(y, left)
	_, rSSE := meanSSE(y, right)
	return parentSSE - (lSSE + rSSE), true
}

// meanSSE returns the mean target and the sum of squared deviations from it
// over the given sample indices.
func meanSSE(y []float64, idx []int) (mean, sse float64) {
	if len(idx) == 0 {
		return 0, 0
	}
	for _, i := range idx {
		mean += y[i]
	}
	mean /= float64(len(idx))
	for _, i := range idx {
		d := y[i] - mean
		sse += d * d
	}
	return mean, sse
}

func uniqueValues(pairs []pair) []float64 {
	m := make(map[float64]struct{})
	out := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := m[p.v]; !ok {
			m[p.v] = struct{}{}
			out = append(out, p.v)
		}
	}
	sort.Float64s(out)
	return out
}

func allIntLike(vals []float64) bool {
	for _, v := range vals {
		if v != float64(int64(v)) {
			return false
		}
	}
	return true
}

func indices(pairs []pair) []int {
	out := make([]int, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.i)
	}
	return out
}
