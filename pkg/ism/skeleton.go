package ism

// Skeleton derives the minimal edge set used to draw the hierarchy
// diagram from a Final Reachability Matrix. It is a diagramming view
// only; downstream consumers of the analysis contract read the IRM,
// FRM, levels, and MICMAC points, never this matrix.
//
// The FRM is a preorder, so factors first collapse into mutual-
// reachability classes. The acyclic relation between classes is then
// transitively reduced: a class edge survives only if no intermediate
// class implies it. The result is expanded back to factor indices:
//
//   - each surviving class edge connects the lowest-index member of the
//     source class to the lowest-index member of the target class
//   - each class with more than one member contributes a simple cycle
//     through its members in ascending index order, so mutual influence
//     stays visible without the full clique
//
// The diagonal is always zero. The output is deterministic for a given
// input matrix.
func Skeleton(frm Matrix) Matrix {
	n := len(frm)
	out := NewMatrix(n)
	if n == 0 {
		return out
	}

	class, members := mutualClasses(frm)

	// Acyclic class relation, excluding self.
	nc := len(members)
	reach := make([][]bool, nc)
	for p := range reach {
		reach[p] = make([]bool, nc)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if frm[i][j] == 1 && class[i] != class[j] {
				reach[class[i]][class[j]] = true
			}
		}
	}

	// Transitive reduction over the class DAG: drop p→q when some
	// intermediate r satisfies p→r and r→q.
	for p := 0; p < nc; p++ {
		for q := 0; q < nc; q++ {
			if !reach[p][q] {
				continue
			}
			reduced := false
			for r := 0; r < nc && !reduced; r++ {
				if r != p && r != q && reach[p][r] && reach[r][q] {
					reduced = true
				}
			}
			if !reduced {
				out[members[p][0]][members[q][0]] = 1
			}
		}
	}

	// Mutual classes render as a simple cycle through their members.
	for _, ms := range members {
		if len(ms) < 2 {
			continue
		}
		for k, i := range ms {
			out[i][ms[(k+1)%len(ms)]] = 1
		}
	}

	return out
}

// mutualClasses groups factor indices by mutual reachability under frm.
// It returns the class index per factor and the member lists in
// ascending order, classes numbered by their lowest member.
func mutualClasses(frm Matrix) (class []int, members [][]int) {
	n := len(frm)
	class = make([]int, n)
	for i := range class {
		class[i] = -1
	}

	for i := 0; i < n; i++ {
		if class[i] != -1 {
			continue
		}
		c := len(members)
		class[i] = c
		group := []int{i}
		for j := i + 1; j < n; j++ {
			if class[j] == -1 && frm[i][j] == 1 && frm[j][i] == 1 {
				class[j] = c
				group = append(group, j)
			}
		}
		members = append(members, group)
	}

	return class, members
}
