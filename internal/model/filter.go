package model

// FilterElements returns only elements whose role is in roles. Elements that
// do not match but have matching descendants are replaced by those
// descendants. Depth filtering happens during traversal, not here.
func FilterElements(elements []Element, roles []string) []Element {
	if len(roles) == 0 {
		return elements
	}

	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}
	return filterByRole(elements, roleSet)
}

func filterByRole(elements []Element, roleSet map[string]bool) []Element {
	var result []Element
	for _, el := range elements {
		var filteredChildren []Element
		if len(el.Children) > 0 {
			filteredChildren = filterByRole(el.Children, roleSet)
		}

		if roleSet[el.Role] {
			filtered := el
			filtered.Children = filteredChildren
			result = append(result, filtered)
		} else if len(filteredChildren) > 0 {
			result = append(result, filteredChildren...)
		}
	}
	return result
}
