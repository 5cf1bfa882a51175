package huffman

import "container/heap"

// node is a Huffman merge-tree node. Real leaves carry a symbol in
// [0, sMax]; dummy leaves carry symbol == sMax+1 and count 0, which is
// guaranteed less than every real nonzero count so they sort to the
// merge front. Internal nodes own n children and a back-reference parent
// (root's parent is -1); the tree is an arena (a single growable slice),
// so parent/child links are plain indices rather than pointers.
type node struct {
	leaf     bool
	symbol   int
	count    int64
	height   int // 0 for a leaf, 1+max(child heights) for an internal node
	seq      int // insertion order, used as the final merge tie-break
	parent   int
	children []int
}

// Tree is the n-ary Huffman merge tree produced by BuildTree. It is
// discarded by the caller once Lengths has extracted code lengths.
type Tree struct {
	nodes      []node
	root       int
	n          int
	degenerate bool
	soleSymbol int // valid only when degenerate; -1 means an empty block
}

// BuildTree constructs the optimal n-ary merge tree for freq (as produced
// by Histogram, length sMax+2) over an n-letter output alphabet.
//
// m<=1 real symbols is degenerate and short-circuits per spec: the block
// needs at most one codeword, so no merge is needed at all.
func BuildTree(freq []int64, sMax, n int) (*Tree, error) {
	if n < 2 {
		return nil, ErrRadix
	}

	type realLeaf struct {
		symbol int
		count  int64
	}
	var leaves []realLeaf
	var total int64
	for s := 0; s <= sMax; s++ {
		if freq[s] > 0 {
			leaves = append(leaves, realLeaf{symbol: s, count: freq[s]})
			total += freq[s]
		}
	}
	if total > 1<<62 {
		return nil, ErrOverflow
	}

	m := len(leaves)
	if m <= 1 {
		t := &Tree{n: n, degenerate: true, soleSymbol: -1}
		if m == 1 {
			t.soleSymbol = leaves[0].symbol
		}
		return t, nil
	}

	// Number of dummy leaves needed so (m+d-1) is a multiple of (n-1),
	// per spec.md P3.
	mod := (m - 1) % (n - 1)
	d := (n - 1 - mod) % (n - 1)

	t := &Tree{n: n}
	t.nodes = make([]node, 0, m+d+(m+d)/(n-1)+1)
	seq := 0
	for _, lf := range leaves {
		t.nodes = append(t.nodes, node{leaf: true, symbol: lf.symbol, count: lf.count, parent: -1, seq: seq})
		seq++
	}
	dummySymbol := sMax + 1
	for i := 0; i < d; i++ {
		t.nodes = append(t.nodes, node{leaf: true, symbol: dummySymbol, count: 0, parent: -1, seq: seq})
		seq++
	}

	mg := &merger{t: t}
	mg.active = make([]int, len(t.nodes))
	for i := range mg.active {
		mg.active[i] = i
	}
	heap.Init(mg)

	for len(mg.active) > 1 {
		children := make([]int, 0, n)
		height := 0
		var count int64
		for i := 0; i < n; i++ {
			c := heap.Pop(mg).(int)
			if t.nodes[c].count < 0 {
				panic("huffman: merged a node with negative count")
			}
			children = append(children, c)
			count += t.nodes[c].count
			if t.nodes[c].height > height {
				height = t.nodes[c].height
			}
		}
		idx := len(t.nodes)
		t.nodes = append(t.nodes, node{
			count:    count,
			height:   height + 1,
			seq:      seq,
			parent:   -1,
			children: children,
		})
		seq++
		for _, c := range children {
			t.nodes[c].parent = idx
		}
		heap.Push(mg, idx)
	}
	t.root = mg.active[0]
	if t.nodes[t.root].count != total {
		panic("huffman: root count does not equal block total")
	}

	return t, nil
}

// merger is the container/heap.Interface backing BuildTree's merge loop:
// a min-heap over active node indices keyed (count, height, seq)
// ascending, matching spec.md §4.2 step 3's tie-break rule exactly.
type merger struct {
	t      *Tree
	active []int
}

func (m *merger) Len() int { return len(m.active) }

func (m *merger) Less(i, j int) bool {
	a, b := m.t.nodes[m.active[i]], m.t.nodes[m.active[j]]
	if a.count != b.count {
		return a.count < b.count
	}
	if a.height != b.height {
		return a.height < b.height
	}
	return a.seq < b.seq
}

func (m *merger) Swap(i, j int) { m.active[i], m.active[j] = m.active[j], m.active[i] }

func (m *merger) Push(x any) { m.active = append(m.active, x.(int)) }

func (m *merger) Pop() any {
	old := m.active
	n := len(old)
	x := old[n-1]
	m.active = old[:n-1]
	return x
}
