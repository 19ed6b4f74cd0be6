package ism

// Closure computes the Final Reachability Matrix: the boolean transitive
// closure of the given Initial Reachability Matrix. The input is not
// modified.
//
// The result is a preorder (reflexive and transitive) and a superset of
// the input: irm[i][j]=1 implies the returned matrix has [i][j]=1.
//
// # Algorithm
//
// A single in-place Floyd–Warshall pass: for each intermediate index k,
// frm[i][j] |= frm[i][k] & frm[k][j], reading the already-updated matrix.
// This order converges in one O(N³) pass and fixes the cell update
// sequence, so results are bit-for-bit reproducible. Applying Closure to
// its own output returns an equal matrix (idempotence).
func Closure(irm Matrix) Matrix {
	frm := irm.Clone()
	n := len(frm)

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if frm[i][k] == 0 {
				continue
			}
			row, via := frm[i], frm[k]
			for j := 0; j < n; j++ {
				if via[j] == 1 {
					row[j] = 1
				}
			}
		}
	}

	return frm
}
