package model

import "testing"

func TestFilterElements_NoFilters(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "btn"},
		{ID: 2, Role: "txt"},
	}
	result := FilterElements(elements, nil)
	if len(result) != 2 {
		t.Errorf("expected 2 elements, got %d", len(result))
	}
}

func TestFilterElements_RoleFilter(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "btn"},
		{ID: 2, Role: "txt"},
		{ID: 3, Role: "input"},
	}
	result := FilterElements(elements, []string{"txt", "input"})
	if len(result) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(result))
	}
	if result[0].Role != "txt" || result[1].Role != "input" {
		t.Errorf("unexpected roles: %s, %s", result[0].Role, result[1].Role)
	}
}

func TestFilterElements_PromotesMatchingDescendants(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "group", Children: []Element{
			{ID: 2, Role: "txt", Title: "Enter class name:"},
			{ID: 3, Role: "group", Children: []Element{
				{ID: 4, Role: "input"},
			}},
		}},
	}
	result := FilterElements(elements, []string{"txt", "input"})
	if len(result) != 2 {
		t.Fatalf("expected 2 promoted elements, got %d", len(result))
	}
	if result[0].ID != 2 || result[1].ID != 4 {
		t.Errorf("expected ids 2 and 4, got %d and %d", result[0].ID, result[1].ID)
	}
}
