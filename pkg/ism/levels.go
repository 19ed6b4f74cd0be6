package ism

import "errors"

// ErrNotPreorder is returned by [Partition] when an iteration assigns no
// factor to the current level while factors remain. For a valid preorder
// at least one factor satisfies the level condition on every non-empty
// remaining set, so this can only arise from a corrupted reachability
// matrix and indicates an internal-consistency bug, never bad user input.
var ErrNotPreorder = errors.New("reachability matrix is not a preorder: level partition made no progress")

// Level is one stratum of the ISM hierarchy. Level 1 is the most
// dependent stratum (topmost in the conventional diagram); higher level
// numbers carry greater net driving influence. Elements are factor
// indices in ascending order.
type Level struct {
	Number   int   `json:"level" bson:"level"`
	Elements []int `json:"elements" bson:"elements"`
}

// Partition decomposes the preorder defined by the Final Reachability
// Matrix into ordered hierarchy levels.
//
// On each iteration, for every not-yet-leveled index i it computes the
// reachability set R(i) and antecedent set A(i), both restricted to the
// remaining indices. Every i whose R(i) equals R(i) ∩ A(i), meaning everything
// i still reaches also reaches i back, joins the current level and is
// removed. The loop runs until no indices remain, at most N iterations.
//
// Every factor index appears in exactly one level. Within a level,
// elements are ordered by ascending factor index.
//
// Partition returns [ErrNotPreorder] if an iteration makes no progress
// on a non-empty remaining set (see the error's doc for why this is
// fatal rather than recoverable).
func Partition(frm Matrix) ([]Level, error) {
	n := len(frm)
	remaining := make([]bool, n)
	for i := range remaining {
		remaining[i] = true
	}

	var levels []Level
	left := n

	for left > 0 {
		var assigned []int

		for i := 0; i < n; i++ {
			if !remaining[i] {
				continue
			}
			if topStratum(frm, remaining, i) {
				assigned = append(assigned, i)
			}
		}

		if len(assigned) == 0 {
			return nil, ErrNotPreorder
		}

		for _, i := range assigned {
			remaining[i] = false
		}
		left -= len(assigned)

		levels = append(levels, Level{
			Number:   len(levels) + 1,
			Elements: assigned,
		})
	}

	return levels, nil
}

// topStratum reports whether index i satisfies the level condition on
// the remaining set: R(i) ⊆ A(i), i.e. every remaining factor i reaches
// is also an antecedent of i. Self-reachability makes i a member of both
// sets, so the intersection comparison reduces to this subset check.
func topStratum(frm Matrix, remaining []bool, i int) bool {
	for j := range frm {
		if !remaining[j] {
			continue
		}
		if frm[i][j] == 1 && frm[j][i] == 0 {
			return false
		}
	}
	return true
}
