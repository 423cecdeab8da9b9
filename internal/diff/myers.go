package diff

// Myers computes line diffs with the Myers algorithm
type Myers struct{}

// Diff implements Differ
func (Myers) Diff(a, b string) Script {
	return Canonical(myersAlgorithm(SplitLines(a), SplitLines(b)))
}

// myersAlgorithm implements the Myers diff algorithm
func myersAlgorithm(a, b []string) Script {
	n := len(a)
	m := len(b)

	// Handle empty cases
	if n == 0 && m == 0 {
		return Script{}
	}
	if n == 0 {
		// All inserts
		script := make(Script, m)
		for i := 0; i < m; i++ {
			script[i] = Entry{b[i], Added}
		}
		return script
	}
	if m == 0 {
		// All deletes
		script := make(Script, n)
		for i := 0; i < n; i++ {
			script[i] = Entry{a[i], Removed}
		}
		return script
	}

	max := n + m

	// V array stores furthest reaching D-path
	v := make([]int, 2*max+2)
	trace := make([][]int, 0)

	// Find the shortest edit script
	for d := 0; d <= max; d++ {
		// Save current V for backtracking
		vCopy := make([]int, len(v))
		copy(vCopy, v)
		trace = append(trace, vCopy)

		for k := -d; k <= d; k += 2 {
			var x int

			// Choose whether to go down or right
			if k == -d || (k != d && v[k-1+max] < v[k+1+max]) {
				x = v[k+1+max]
			} else {
				x = v[k-1+max] + 1
			}

			y := x - k

			// Extend diagonal as far as possible
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}

			v[k+max] = x

			// Check if we've reached the end
			if x >= n && y >= m {
				return backtrack(a, b, trace, max)
			}
		}
	}

	// Shouldn't reach here
	return Script{}
}

// backtrack reconstructs the edit script from the trace
func backtrack(a, b []string, trace [][]int, offset int) Script {
	reversed := make(Script, 0, len(a)+len(b))
	x := len(a)
	y := len(b)

	for d := len(trace) - 1; d >= 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[k-1+offset] < v[k+1+offset]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}

		prevX := v[prevK+offset]
		prevY := prevX - prevK

		// Diagonal moves are unchanged lines
		for x > prevX && y > prevY {
			x--
			y--
			reversed = append(reversed, Entry{a[x], Old})
		}

		if d > 0 {
			if x == prevX {
				// Insert
				y--
				reversed = append(reversed, Entry{b[y], Added})
			} else {
				// Delete
				x--
				reversed = append(reversed, Entry{a[x], Removed})
			}
		}
	}

	script := make(Script, len(reversed))
	for i, entry := range reversed {
		script[len(reversed)-1-i] = entry
	}
	return script
}
