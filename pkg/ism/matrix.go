package ism

// Matrix is a dense N×N 0/1 matrix indexed by factor position.
// Row i column j holds 1 when factor i relates to factor j.
//
// The zero value is an empty matrix; use NewMatrix to allocate one of a
// given size. Matrices marshal to JSON as nested integer arrays.
type Matrix [][]int

// NewMatrix allocates an n×n matrix with all cells zero.
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	cells := make([]int, n*n)
	for i := range m {
		m[i] = cells[i*n : (i+1)*n : (i+1)*n]
	}
	return m
}

// N returns the matrix dimension.
func (m Matrix) N() int { return len(m) }

// Clone returns an independent copy of the matrix.
func (m Matrix) Clone() Matrix {
	out := NewMatrix(len(m))
	for i := range m {
		copy(out[i], m[i])
	}
	return out
}

// RowSum returns the number of 1-cells in row i.
// For a reachability matrix this is factor i's driving power.
func (m Matrix) RowSum(i int) int {
	sum := 0
	for _, v := range m[i] {
		sum += v
	}
	return sum
}

// ColSum returns the number of 1-cells in column j.
// For a reachability matrix this is factor j's dependence power.
func (m Matrix) ColSum(j int) int {
	sum := 0
	for i := range m {
		sum += m[i][j]
	}
	return sum
}

// Ones returns the total count of 1-cells in the matrix.
func (m Matrix) Ones() int {
	sum := 0
	for i := range m {
		sum += m.RowSum(i)
	}
	return sum
}

// Equal reports whether m and other have identical dimensions and cells.
func (m Matrix) Equal(other Matrix) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(other[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Permute returns a copy of m with rows and columns reordered so that
// position p in the output corresponds to index perm[p] in the input.
// perm must be a permutation of 0..N-1.
func (m Matrix) Permute(perm []int) Matrix {
	out := NewMatrix(len(m))
	for p, i := range perm {
		for q, j := range perm {
			out[p][q] = m[i][j]
		}
	}
	return out
}
