package board

// HasWon reports whether some connected group of owned cells touches all
// three sides of a board of the given size. The result depends only on the
// set of cells, not on their order.
func HasWon(size int, owned []Coordinates) bool {
	set := make(map[Coordinates]struct{}, len(owned))
	for _, c := range owned {
		if c.InBounds(size) {
			set[c] = struct{}{}
		}
	}

	visited := make(map[Coordinates]struct{}, len(set))
	stack := make([]Coordinates, 0, len(set))

	for _, start := range owned {
		if _, ok := set[start]; !ok {
			continue
		}
		if _, seen := visited[start]; seen {
			continue
		}

		var a, b, c bool
		visited[start] = struct{}{}
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			a = a || cur.TouchesA()
			b = b || cur.TouchesB()
			c = c || cur.TouchesC()

			for _, n := range cur.Neighbors(size) {
				if _, mine := set[n]; !mine {
					continue
				}
				if _, seen := visited[n]; seen {
					continue
				}
				visited[n] = struct{}{}
				stack = append(stack, n)
			}
		}
		if a && b && c {
			return true
		}
	}
	return false
}
