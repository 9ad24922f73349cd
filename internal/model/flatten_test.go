package model

import "testing"

func TestFlattenElements_Basic(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "txt", Title: "Enter class name:"},
		{ID: 2, Role: "input", Value: "abc"},
	}
	result := FlattenElements(elements)
	if len(result) != 2 {
		t.Fatalf("expected 2 flat elements, got %d", len(result))
	}
	if result[0].Path != "txt" {
		t.Errorf("expected path 'txt', got %q", result[0].Path)
	}
	if result[1].Value != "abc" {
		t.Errorf("expected value 'abc', got %q", result[1].Value)
	}
}

func TestFlattenElements_NestedPath(t *testing.T) {
	result := FlattenElements(buildDialogTree())
	if len(result) != 6 {
		t.Fatalf("expected 6 flat elements, got %d", len(result))
	}
	want := map[int]string{
		1: "window",
		2: "window > group",
		3: "window > group > txt",
		6: "window > group > group > txt",
		5: "window > input",
	}
	for _, fe := range result {
		if p, ok := want[fe.ID]; ok && fe.Path != p {
			t.Errorf("id=%d: expected path %q, got %q", fe.ID, p, fe.Path)
		}
	}
}

func TestFlattenElements_Empty(t *testing.T) {
	if result := FlattenElements(nil); len(result) != 0 {
		t.Errorf("expected empty result, got %d", len(result))
	}
}
