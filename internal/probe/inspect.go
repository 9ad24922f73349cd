package probe

import (
	"context"

	"github.com/mj1618/focusprobe/internal/model"
)

// LocateResult is the output of a one-shot search window lookup.
type LocateResult struct {
	OK       bool                `yaml:"ok"                 json:"ok"`
	Action   string              `yaml:"action"             json:"action"`
	Label    string              `yaml:"label"              json:"label"`
	Window   *model.Window       `yaml:"window,omitempty"   json:"window,omitempty"`
	Field    *model.Element      `yaml:"field,omitempty"    json:"field,omitempty"`
	Elements []model.Element     `yaml:"elements,omitempty" json:"elements,omitempty"`
	Flat     []model.FlatElement `yaml:"flat,omitempty"     json:"flat,omitempty"`
	Error    string              `yaml:"error,omitempty"    json:"error,omitempty"`
}

// CheckResult is the output of a one-shot search field assertion.
type CheckResult struct {
	OK       bool           `yaml:"ok"               json:"ok"`
	Action   string         `yaml:"action"           json:"action"`
	Pass     bool           `yaml:"pass"             json:"pass"`
	Expected string         `yaml:"expected"         json:"expected"`
	Actual   string         `yaml:"actual"           json:"actual"`
	Window   *model.Window  `yaml:"window,omitempty" json:"window,omitempty"`
	Field    *model.Element `yaml:"field,omitempty"  json:"field,omitempty"`
	Error    string         `yaml:"error,omitempty"  json:"error,omitempty"`
}

// searchRoles are the roles shown for a located popup.
var searchRoles = []string{model.RoleLabel, model.RoleInput}

// Locate finds the search window once and reports its labels and text
// fields. With flat set the elements are listed with path breadcrumbs
// instead of nested. A lookup failure is returned both as err and in the
// result.
func Locate(ctx context.Context, l *Locator, flat bool) (*LocateResult, error) {
	result := &LocateResult{Action: "locate", Label: l.Label}
	sw, err := l.Find(ctx)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	result.OK = true
	result.Window = &sw.Window
	result.Field = model.FindFirstBFS(sw.Elements, func(el *model.Element) bool {
		return el.Role == model.RoleInput
	})
	elements := model.FilterElements(sw.Elements, searchRoles)
	if flat {
		result.Flat = model.FlattenElements(elements)
	} else {
		result.Elements = elements
	}
	return result, nil
}

// Check finds the search window once and asserts its text field holds
// expected. OK reports that the check ran; Pass reports the assertion.
func Check(ctx context.Context, l *Locator, expected string) (*CheckResult, error) {
	result := &CheckResult{Action: "check", Expected: expected}
	sw, err := l.Find(ctx)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	result.Window = &sw.Window

	field, err := CheckSearchField(sw, expected)
	if field != nil {
		result.Field = field
		result.Actual = field.Value
	}
	if err != nil {
		result.OK = IsAssertionError(err)
		result.Error = err.Error()
		return result, err
	}
	result.OK = true
	result.Pass = true
	return result, nil
}
