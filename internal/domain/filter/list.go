package filter

import (
	"bytes"
	"slices"

	"github.com/bytedance/sonic"
)

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// StringList accepts either a JSON string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isJSONNull(data) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var out []string
		if err := strictJSON.Unmarshal(data, &out); err != nil {
			return err
		}
		*l = out
		return nil
	}
	var v string
	if err := strictJSON.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = StringList{v}
	return nil
}

func (l StringList) Has(v string) bool { return slices.Contains(l, v) }

// withoutNone splits the list into concrete values and whether "None" was present.
func (l StringList) withoutNone() ([]string, bool) {
	out := make([]string, 0, len(l))
	hasNone := false
	for _, v := range l {
		if v == NoneValue {
			hasNone = true
			continue
		}
		out = append(out, v)
	}
	return out, hasNone
}

func (l StringList) normalized() StringList {
	if len(l) == 0 {
		return nil
	}
	out := slices.Clone(l)
	slices.Sort(out)
	return slices.Compact(out)
}

// IntList accepts either a JSON integer or an array of integers.
type IntList []int

func (l *IntList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isJSONNull(data) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var out []int
		if err := strictJSON.Unmarshal(data, &out); err != nil {
			return err
		}
		*l = out
		return nil
	}
	var v int
	if err := strictJSON.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = IntList{v}
	return nil
}

func (l IntList) normalized() IntList {
	if len(l) == 0 {
		return nil
	}
	out := slices.Clone(l)
	slices.Sort(out)
	return slices.Compact(out)
}

// FloatList accepts either a JSON number or an array of numbers.
type FloatList []float64

func (l *FloatList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isJSONNull(data) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var out []float64
		if err := strictJSON.Unmarshal(data, &out); err != nil {
			return err
		}
		*l = out
		return nil
	}
	var v float64
	if err := strictJSON.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = FloatList{v}
	return nil
}

func (l FloatList) normalized() FloatList {
	if len(l) == 0 {
		return nil
	}
	out := slices.Clone(l)
	slices.Sort(out)
	return slices.Compact(out)
}

// NullableBool is a boolean filter that may also be the literal "None".
type NullableBool struct {
	Set   bool
	None  bool
	Value bool
}

func (b *NullableBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case isJSONNull(data):
		*b = NullableBool{}
	case string(data) == "true":
		*b = NullableBool{Set: true, Value: true}
	case string(data) == "false":
		*b = NullableBool{Set: true}
	case string(data) == `"`+NoneValue+`"`:
		*b = NullableBool{Set: true, None: true}
	default:
		return &ValidationError{Field: "divisional", Value: string(data), Constraint: `true, false or "None"`}
	}
	return nil
}

func (b NullableBool) MarshalJSON() ([]byte, error) {
	switch {
	case !b.Set:
		return []byte("null"), nil
	case b.None:
		return []byte(`"` + NoneValue + `"`), nil
	case b.Value:
		return []byte("true"), nil
	default:
		return []byte("false"), nil
	}
}

func (b NullableBool) IsZero() bool { return !b.Set }

func isJSONNull(data []byte) bool {
	return len(data) == 0 || string(data) == "null"
}
