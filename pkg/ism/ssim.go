package ism

// BuildIRM encodes the SSIM judgment map into the Initial Reachability
// Matrix for the given ordered factor identifiers.
//
// The diagonal is forced to 1 (reflexivity) regardless of input. Every
// off-diagonal cell pair is set from exactly one judgment lookup: for
// each upper-triangle pair (i, j) with i < j, the entry judgments[ids[i]][ids[j]]
// determines both IRM[i][j] (V or X) and IRM[j][i] (A or X). Absent
// entries resolve to O. Judgments supplied for lower-triangle or
// diagonal pairs are never consulted, so IRM[i][j] and IRM[j][i] are
// always jointly consistent with a single V/A/X/O symbol.
//
// BuildIRM assumes pre-validated input (see Judgments.Validate); it does
// not inspect symbols outside the single lookup per pair.
func BuildIRM(ids []string, judgments Judgments) Matrix {
	n := len(ids)
	irm := NewMatrix(n)

	for i := 0; i < n; i++ {
		irm[i][i] = 1
		for j := i + 1; j < n; j++ {
			s := judgments.Lookup(ids[i], ids[j])
			if s.Forward() {
				irm[i][j] = 1
			}
			if s.Backward() {
				irm[j][i] = 1
			}
		}
	}

	return irm
}
