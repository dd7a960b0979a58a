package filter

import (
	"fmt"
	"strings"
)

// ValidationError pins a rejected value to the field and constraint it violated.
type ValidationError struct {
	Field      string `json:"field"`
	Value      any    `json:"value"`
	Constraint string `json:"constraint"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %v violates %s", e.Field, e.Value, e.Constraint)
}

// ValidationErrors is returned whole; a filter either validates entirely or not at all.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "filter validation failed: " + strings.Join(parts, "; ")
}

type checker struct {
	errs ValidationErrors
}

func (c *checker) fail(field string, value any, constraint string) {
	c.errs = append(c.errs, ValidationError{Field: field, Value: value, Constraint: constraint})
}

func (c *checker) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

// enum canonicalizes every member of list through lookup, keeping "None" when allowNone.
func (c *checker) enum(field string, list StringList, allowNone bool, constraint string, lookup func(string) (string, bool)) StringList {
	if len(list) == 0 {
		return nil
	}
	out := make(StringList, 0, len(list))
	for _, v := range list {
		if allowNone && v == NoneValue {
			out = append(out, NoneValue)
			continue
		}
		canonical, ok := lookup(v)
		if !ok {
			c.fail(field, v, constraint)
			continue
		}
		out = append(out, canonical)
	}
	return out.normalized()
}

func (c *checker) intRange(field string, list IntList, lo, hi int) IntList {
	for _, v := range list {
		if v < lo || v > hi {
			c.fail(field, v, fmt.Sprintf("range %d..%d", lo, hi))
		}
	}
	return list.normalized()
}

func (c *checker) intPtr(field string, v *int, lo, hi int) {
	if v != nil && (*v < lo || *v > hi) {
		c.fail(field, *v, fmt.Sprintf("range %d..%d", lo, hi))
	}
}

func (c *checker) floatRange(field string, list FloatList, lo, hi float64, halfSteps bool) FloatList {
	for _, v := range list {
		c.floatValue(field, v, lo, hi, halfSteps)
	}
	return list.normalized()
}

func (c *checker) floatPtr(field string, v *float64, lo, hi float64, halfSteps bool) {
	if v != nil {
		c.floatValue(field, *v, lo, hi, halfSteps)
	}
}

func (c *checker) floatValue(field string, v, lo, hi float64, halfSteps bool) {
	if v < lo || v > hi {
		c.fail(field, v, fmt.Sprintf("range %g..%g", lo, hi))
		return
	}
	if halfSteps && !isHalfStep(v) {
		c.fail(field, v, "multiple of 0.5")
	}
}

func (c *checker) orderedInts(field string, lo, hi *int) {
	if lo != nil && hi != nil && *lo > *hi {
		c.fail(field, fmt.Sprintf("%d > %d", *lo, *hi), "lower bound must not exceed upper bound")
	}
}

func (c *checker) orderedFloats(field string, lo, hi *float64) {
	if lo != nil && hi != nil && *lo > *hi {
		c.fail(field, fmt.Sprintf("%g > %g", *lo, *hi), "lower bound must not exceed upper bound")
	}
}

func isHalfStep(v float64) bool {
	doubled := v * 2
	return doubled == float64(int64(doubled))
}
