package model

import "testing"

// buildDialogTree mimics the Go to Class popup:
//
//	window (1)
//	├── group (2)
//	│   ├── txt "Enter class name:" (3)
//	│   └── group (4)
//	│       └── txt "Include non-project classes" (6)
//	└── input (5)
func buildDialogTree() []Element {
	return []Element{
		{
			ID: 1, Role: "window",
			Children: []Element{
				{
					ID: 2, Role: "group",
					Children: []Element{
						{ID: 3, Role: "txt", Title: "Enter class name:"},
						{ID: 4, Role: "group", Children: []Element{
							{ID: 6, Role: "txt", Title: "Include non-project classes"},
						}},
					},
				},
				{ID: 5, Role: "input", Value: "abc"},
			},
		},
	}
}

func ids(elements []*Element) []int {
	out := make([]int, 0, len(elements))
	for _, el := range elements {
		out = append(out, el.ID)
	}
	return out
}

func TestWalkBFS_LevelOrder(t *testing.T) {
	var visited []int
	walkBFS(buildDialogTree(), func(el *Element) bool {
		visited = append(visited, el.ID)
		return true
	})
	want := []int{1, 2, 5, 3, 4, 6}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
}

func TestFindAllBFS_ByRole(t *testing.T) {
	labels := FindAllBFS(buildDialogTree(), "txt")
	got := ids(labels)
	if len(got) != 2 || got[0] != 3 || got[1] != 6 {
		t.Errorf("FindAllBFS(txt) = %v, want [3 6]", got)
	}
}

func TestFindAllBFS_NoMatch(t *testing.T) {
	if got := FindAllBFS(buildDialogTree(), "btn"); len(got) != 0 {
		t.Errorf("expected no buttons, got %v", ids(got))
	}
	if got := FindAllBFS(nil, "txt"); len(got) != 0 {
		t.Errorf("expected no matches on empty tree, got %v", ids(got))
	}
}

func TestFindFirstBFS_ShallowBeatsDeep(t *testing.T) {
	tree := []Element{
		{ID: 1, Role: "group", Children: []Element{
			{ID: 2, Role: "group", Children: []Element{
				{ID: 4, Role: "input", Value: "deep"},
			}},
			{ID: 3, Role: "input", Value: "shallow"},
		}},
	}
	el := FindFirstBFS(tree, func(e *Element) bool { return e.Role == "input" })
	if el == nil {
		t.Fatal("expected a match")
	}
	if el.ID != 3 {
		t.Errorf("expected shallow input id=3, got id=%d", el.ID)
	}
}

func TestFindFirstBFS_AliasesInput(t *testing.T) {
	tree := buildDialogTree()
	el := FindFirstBFS(tree, func(e *Element) bool { return e.ID == 5 })
	if el == nil {
		t.Fatal("expected a match")
	}
	el.Value = "changed"
	if tree[0].Children[1].Value != "changed" {
		t.Error("returned pointer should alias the input tree")
	}
}

func TestFindFirstBFS_Nil(t *testing.T) {
	if el := FindFirstBFS(buildDialogTree(), func(*Element) bool { return false }); el != nil {
		t.Errorf("expected nil, got id=%d", el.ID)
	}
}
