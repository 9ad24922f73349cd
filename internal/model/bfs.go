package model

// FindFirstBFS walks the trees level by level and returns the first element
// for which match returns true, or nil. Siblings are visited in order.
// The returned pointer aliases the input slice.
func FindFirstBFS(roots []Element, match func(*Element) bool) *Element {
	var found *Element
	walkBFS(roots, func(el *Element) bool {
		if match(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// FindAllBFS returns every element with the given role code in breadth-first
// order. The returned pointers alias the input slice.
func FindAllBFS(roots []Element, role string) []*Element {
	var result []*Element
	walkBFS(roots, func(el *Element) bool {
		if el.Role == role {
			result = append(result, el)
		}
		return true
	})
	return result
}

// walkBFS visits elements breadth-first until visit returns false.
func walkBFS(roots []Element, visit func(*Element) bool) {
	queue := make([]*Element, 0, len(roots))
	for i := range roots {
		queue = append(queue, &roots[i])
	}
	for len(queue) > 0 {
		el := queue[0]
		queue = queue[1:]
		if !visit(el) {
			return
		}
		for i := range el.Children {
			queue = append(queue, &el.Children[i])
		}
	}
}
