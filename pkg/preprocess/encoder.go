package preprocess

import (
	"fmt"
	"sort"
)

// UnknownCategoryError reports a categorical value that was never seen when
// the encoders were fit. It is never silently coerced to a default code.
type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unrecognized category %q for field %q", e.Value, e.Field)
}

// LabelEncoder maps the categories of one field to integer codes. It is fit
// once on the training vocabulary and reused, unchanged, for every later
// transform.
type LabelEncoder struct {
	Field   string
	Mapping map[string]int
	Classes []string // codes in order, Classes[code] == category
}

// FitEncoder builds an encoder over the distinct values of one column.
// Categories are sorted before coding so refitting on the same data always
// yields the same mapping.
func FitEncoder(field string, values []string) *LabelEncoder {
	seen := map[string]struct{}{}
	classes := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			classes = append(classes, v)
		}
	}
	sort.Strings(classes)
	mapping := make(map[string]int, len(classes))
	for i, c := range classes {
		mapping[c] = i
	}
	return &LabelEncoder{Field: field, Mapping: mapping, Classes: classes}
}

// Transform looks up the code for a category.
func (e *LabelEncoder) Transform(value string) (int, error) {
	code, ok := e.Mapping[value]
	if !ok {
		return 0, &UnknownCategoryError{Field: e.Field, Value: value}
	}
	return code, nil
}

// FitEncoders fits one encoder per categorical field over a set of records.
func FitEncoders(records []Record) map[string]*LabelEncoder {
	encoders := make(map[string]*LabelEncoder, len(CategoricalFields))
	for _, field := range CategoricalFields {
		col := make([]string, len(records))
		for i := range records {
			col[i] = records[i].Categorical(field)
		}
		encoders[field] = FitEncoder(field, col)
	}
	return encoders
}
