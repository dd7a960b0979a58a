package querybuilder

import (
	"errors"
	"reflect"
	"strings"
)

// InsertModel builds a single-row insert from the db tags of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}
	ins := InsertInto(table).Suffix(suffix)
	values := make([]any, len(cols))
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i], values[i] = c.name, c.value
	}
	return ins.Columns(names...).Values(values...).ToSQL()
}

// ColumnMap returns the db-tagged fields of model keyed by column name.
// Nil pointers become nil and other pointers are dereferenced, so the map
// holds the values a row would carry. Embedded structs are flattened.
func ColumnMap(model any) (map[string]any, error) {
	cols, err := modelColumns(model)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		out[c.name] = deref(c.value)
	}
	return out, nil
}

type column struct {
	name  string
	value any
}

func modelColumns(model any) ([]column, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, errors.New("model cannot be nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, errors.New("model must be struct")
	}

	cols := collectColumns(v, nil)
	if len(cols) == 0 {
		return nil, errors.New("model has no db columns")
	}
	return cols, nil
}

func collectColumns(v reflect.Value, out []column) []column {
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		switch {
		case name == "" && field.Anonymous && field.Type.Kind() == reflect.Struct:
			// Promoted fields of an unexported embedded struct are still readable.
			out = collectColumns(v.Field(i), out)
		case !field.IsExported(), name == "", name == "-":
		default:
			out = append(out, column{name: name, value: v.Field(i).Interface()})
		}
	}
	return out
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}
	if rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface()
}
