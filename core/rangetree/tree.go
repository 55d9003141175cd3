// Package rangetree implements an augmented interval search tree over
// translation rules.
//
// The tree is a binary search tree keyed by each rule's source start. Every
// node carries the maximum source End found in its subtree, so overlap
// queries can prune any subtree that ends before the query begins. The tree
// is never rebalanced: rule sets arrive in input order and stay small, so a
// plain BST keeps lookups cheap without balancing machinery. Shape therefore
// depends on insertion order, but query results do not.
package rangetree

import (
	"github.com/FocuswithJustin/Almanac/core/interval"
)

// Tree is an augmented interval search tree over rules. The zero value is
// an empty tree ready for use. Trees are not safe for concurrent mutation;
// once built they may be queried from any number of goroutines.
type Tree struct {
	root *node
	size int
}

type node struct {
	rule   interval.Rule
	maxEnd uint64
	left   *node
	right  *node
}

func newNode(rule interval.Rule) *node {
	return &node{rule: rule, maxEnd: rule.Source.End}
}

// Len returns the number of rules stored in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Insert adds a rule to the tree. Rules with a smaller source start descend
// left, all others right, so equal starts keep insertion order on the right
// spine.
func (t *Tree) Insert(rule interval.Rule) {
	t.size++
	if t.root == nil {
		t.root = newNode(rule)
		return
	}
	t.root.insert(rule)
}

func (n *node) insert(rule interval.Rule) {
	if rule.Source.End > n.maxEnd {
		n.maxEnd = rule.Source.End
	}
	if rule.Source.Start < n.rule.Source.Start {
		if n.left == nil {
			n.left = newNode(rule)
			return
		}
		n.left.insert(rule)
		return
	}
	if n.right == nil {
		n.right = newNode(rule)
		return
	}
	n.right.insert(rule)
}

// FindIntersections collects, for every stored rule whose source overlaps
// query, the rule restricted to the overlapping portion: the shared source
// slice paired with its image in target space. Subtrees are pruned when
// their maxEnd cannot reach past the query start; under half-open
// semantics a subtree ending exactly at query.Start holds no overlap.
// Results follow tree order, not source order.
func (t *Tree) FindIntersections(query interval.Interval) []interval.Rule {
	if t.root == nil || query.IsEmpty() {
		return nil
	}
	return t.root.findIntersections(query, nil)
}

func (n *node) findIntersections(query interval.Interval, acc []interval.Rule) []interval.Rule {
	if shared, ok := n.rule.Source.Intersect(query); ok {
		if sub, ok := n.rule.Subrange(shared); ok {
			acc = append(acc, sub)
		}
	}
	if n.left != nil && n.left.maxEnd > query.Start {
		acc = n.left.findIntersections(query, acc)
	}
	if n.right != nil && n.right.maxEnd > query.Start {
		acc = n.right.findIntersections(query, acc)
	}
	return acc
}

// FindOverlapping returns one rule whose source overlaps query, found by a
// single guided descent: at each node the left subtree is taken when its
// maxEnd reaches past the query start, otherwise the right. Taking the left
// subtree is safe because if it holds no overlap despite reaching the
// query, its deepest-reaching interval must start at or beyond query.End,
// which puts the root and the whole right subtree beyond it too. The second
// result is false when the descent exhausts the tree without a hit.
func (t *Tree) FindOverlapping(query interval.Interval) (interval.Rule, bool) {
	if query.IsEmpty() {
		return interval.Rule{}, false
	}
	for n := t.root; n != nil; {
		if n.rule.Source.Overlaps(query) {
			return n.rule, true
		}
		if n.left != nil && n.left.maxEnd > query.Start {
			n = n.left
		} else {
			n = n.right
		}
	}
	return interval.Rule{}, false
}

// Walk visits every rule in ascending source-start order, passing each rule
// together with the maxEnd augmentation of its node.
func (t *Tree) Walk(fn func(rule interval.Rule, maxEnd uint64)) {
	t.root.walk(fn)
}

func (n *node) walk(fn func(interval.Rule, uint64)) {
	if n == nil {
		return
	}
	n.left.walk(fn)
	fn(n.rule, n.maxEnd)
	n.right.walk(fn)
}
