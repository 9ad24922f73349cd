package model

import (
	"encoding/json"
	"testing"
)

func TestElement_JSONKeys(t *testing.T) {
	el := Element{
		ID:     1,
		Role:   "txt",
		Title:  "Enter class name:",
		Bounds: [4]int{10, 20, 100, 30},
	}
	data, err := json.Marshal(el)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"i", "r", "t", "b"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %q in JSON output", key)
		}
	}
	for _, key := range []string{"id", "role", "title", "bounds"} {
		if _, ok := m[key]; ok {
			t.Errorf("unexpected verbose key %q in JSON output", key)
		}
	}
}

func TestElement_OmitEmpty(t *testing.T) {
	el := Element{ID: 1, Role: "input", Bounds: [4]int{0, 0, 100, 30}}
	data, err := json.Marshal(el)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"t", "v", "d", "f", "s", "e", "c"} {
		if _, ok := m[key]; ok {
			t.Errorf("zero-valued key %q should be omitted", key)
		}
	}
}

func TestElement_EnabledFalse_Included(t *testing.T) {
	f := false
	el := Element{ID: 1, Role: "btn", Bounds: [4]int{0, 0, 100, 30}, Enabled: &f}
	data, err := json.Marshal(el)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	val, ok := m["e"]
	if !ok {
		t.Fatal("enabled=false should be included in JSON")
	}
	if val != false {
		t.Errorf("expected enabled=false, got %v", val)
	}
}

func TestElement_Text(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want string
	}{
		{"title wins", Element{Title: "Enter class name:", Value: "ignored"}, "Enter class name:"},
		{"value fallback", Element{Value: "Enter class name:"}, "Enter class name:"},
		{"empty", Element{Description: "only a description"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestElement_Area(t *testing.T) {
	el := Element{Bounds: [4]int{5, 5, 40, 10}}
	if got := el.Area(); got != 400 {
		t.Errorf("Area() = %d, want 400", got)
	}
}
