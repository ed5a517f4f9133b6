package placeholder

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

// Values binds placeholder ids to their content. Strings back string-like
// types, bools back Boolean and []Values back Repeater.
type Values map[string]any

// String returns the string bound to id, or "".
func (v Values) String(id string) string {
	switch value := v[id].(type) {
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

// Bool returns the bool bound to id, or false.
func (v Values) Bool(id string) bool {
	value, _ := v[id].(bool)
	return value
}

// Items returns the repeater items bound to id.
func (v Values) Items(id string) []Values {
	items, _ := v[id].([]Values)
	return items
}

// Clone returns a deep copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		if items, ok := value.([]Values); ok {
			copied := make([]Values, len(items))
			for i, item := range items {
				copied[i] = item.Clone()
			}
			out[key] = copied
			continue
		}
		out[key] = value
	}
	return out
}

// Defaults returns a fully populated Values built from each spec's default.
// A repeater with no default binds an empty sequence.
func (s Specs) Defaults() Values {
	out := make(Values, len(s))
	for _, spec := range s {
		out[spec.ID] = spec.defaultValue()
	}
	return out
}

func (s Spec) defaultValue() any {
	switch s.Type {
	case Boolean:
		value, _ := s.Default.(bool)
		return value
	case Repeater:
		items, _ := s.Default.([]Values)
		out := make([]Values, len(items))
		for i, item := range items {
			out[i] = s.Fields.fillItem(item)
		}
		return out
	default:
		value, _ := s.Default.(string)
		return value
	}
}

// fillItem completes item with field defaults for any missing key.
func (s Specs) fillItem(item Values) Values {
	out := s.Defaults()
	for _, spec := range s {
		if value, ok := item[spec.ID]; ok {
			if spec.Type == Repeater {
				nested, _ := value.([]Values)
				filled := make([]Values, len(nested))
				for i, child := range nested {
					filled[i] = spec.Fields.fillItem(child)
				}
				out[spec.ID] = filled
				continue
			}
			out[spec.ID] = value
		}
	}
	return out
}

// Bind merges overrides onto the spec defaults. Override keys must name a
// declared placeholder and values are coerced to the placeholder's type;
// loosely typed input such as decoded YAML is accepted.
func (s Specs) Bind(overrides map[string]any) (Values, error) {
	values := s.Defaults()
	for _, key := range sortedKeys(overrides) {
		spec, ok := s.Lookup(key)
		if !ok {
			return nil, fragerrors.NewUnknownPlaceholderError("", key)
		}
		value, err := spec.coerce(key, overrides[key])
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}

func (s Spec) coerce(field string, raw any) (any, error) {
	if raw == nil {
		return s.defaultValue(), nil
	}

	var value any
	switch s.Type {
	case Boolean:
		switch typed := raw.(type) {
		case bool:
			value = typed
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
			if err != nil {
				return nil, fragerrors.NewValidationError(field, fmt.Sprintf("boolean value expected, got %q", typed), err)
			}
			value = parsed
		default:
			return nil, fragerrors.NewValidationError(field, fmt.Sprintf("boolean value expected, got %T", raw), nil)
		}
	case Repeater:
		items, err := s.coerceItems(field, raw)
		if err != nil {
			return nil, err
		}
		value = items
	default:
		switch typed := raw.(type) {
		case string:
			value = typed
		case int, int64, float64, uint64:
			value = fmt.Sprint(typed)
		default:
			return nil, fragerrors.NewValidationError(field, fmt.Sprintf("string value expected, got %T", raw), nil)
		}
	}

	if err := s.checkValue(field, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (s Spec) coerceItems(field string, raw any) ([]Values, error) {
	var list []any
	switch typed := raw.(type) {
	case []Values:
		for _, item := range typed {
			list = append(list, map[string]any(item))
		}
	case []map[string]any:
		for _, item := range typed {
			list = append(list, item)
		}
	case []any:
		list = typed
	default:
		return nil, fragerrors.NewValidationError(field, fmt.Sprintf("list of items expected, got %T", raw), nil)
	}

	items := make([]Values, 0, len(list))
	for i, entry := range list {
		itemField := fmt.Sprintf("%s[%d]", field, i)
		var fields map[string]any
		switch typed := entry.(type) {
		case map[string]any:
			fields = typed
		case Values:
			fields = typed
		default:
			return nil, fragerrors.NewValidationError(itemField, fmt.Sprintf("item must be a mapping, got %T", entry), nil)
		}

		item := s.Fields.Defaults()
		for _, key := range sortedKeys(fields) {
			child, ok := s.Fields.Lookup(key)
			if !ok {
				return nil, fragerrors.NewUnknownPlaceholderError("", itemField+"."+key)
			}
			value, err := child.coerce(itemField+"."+key, fields[key])
			if err != nil {
				return nil, err
			}
			item[key] = value
		}
		items = append(items, item)
	}
	return items, nil
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

func unsafeURL(raw string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	return strings.HasPrefix(trimmed, "javascript:") || strings.HasPrefix(trimmed, "vbscript:")
}
