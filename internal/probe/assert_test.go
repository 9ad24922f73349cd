package probe

import (
	"errors"
	"testing"

	"github.com/mj1618/focusprobe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchWindowWithField(value string) *SearchWindow {
	return &SearchWindow{
		Window: model.Window{ID: 7},
		Elements: []model.Element{{
			ID: 1, Role: model.RoleWindow,
			Children: []model.Element{
				{ID: 2, Role: "group", Children: []model.Element{
					{ID: 3, Role: model.RoleLabel, Title: DefaultLabel},
					{ID: 4, Role: model.RoleInput, Value: "nested field"},
				}},
				{ID: 5, Role: model.RoleInput, Value: value},
			},
		}},
	}
}

func TestCheckSearchField_ExactMatch(t *testing.T) {
	field, err := CheckSearchField(searchWindowWithField(DefaultText), DefaultText)
	require.NoError(t, err)
	assert.Equal(t, 5, field.ID, "the shallowest text field is the default one")
}

func TestCheckSearchField_Mismatch(t *testing.T) {
	tests := []struct {
		name   string
		actual string
	}{
		{"empty", ""},
		{"case", "HEFUIHWEFWEHRF;WERFWERFW"},
		{"truncated", "hefuihwefwehrf;werf"},
		{"trailing space", DefaultText + " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckSearchField(searchWindowWithField(tt.actual), DefaultText)
			var ae *AssertionError
			require.True(t, errors.As(err, &ae), "expected AssertionError, got %v", err)
			assert.Equal(t, DefaultText, ae.Expected)
			assert.Equal(t, tt.actual, ae.Actual)
			assert.Contains(t, err.Error(), "expected")
		})
	}
}

func TestCheckSearchField_NoField(t *testing.T) {
	sw := &SearchWindow{Elements: []model.Element{{ID: 1, Role: model.RoleLabel, Title: DefaultLabel}}}
	_, err := CheckSearchField(sw, DefaultText)
	var le *LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, SearchFieldTarget, le.Target)
}

func TestCheckSearchField_NilWindow(t *testing.T) {
	_, err := CheckSearchField(nil, DefaultText)
	assert.Error(t, err)
}
