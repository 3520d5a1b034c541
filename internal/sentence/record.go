// Package sentence holds the quiz sentences and the queries served from them.
package sentence

import "slices"

// DefaultTag is used for Test and Group when the source leaves them empty.
const DefaultTag = "all"

// Record is one quiz sentence with its noun answer key.
type Record struct {
	Sentence string   `json:"sentence" yaml:"sentence"`
	Title    string   `json:"title" yaml:"title"`
	Nouns    []string `json:"nouns" yaml:"nouns"`
	Test     string   `json:"test" yaml:"test"`
	Group    string   `json:"group" yaml:"group"`
}

// NewRecord fills the default tags and copies nouns.
func NewRecord(sentence, title string, nouns []string, test, group string) Record {
	if test == "" {
		test = DefaultTag
	}
	if group == "" {
		group = DefaultTag
	}
	copied := make([]string, len(nouns))
	copy(copied, nouns)
	return Record{
		Sentence: sentence,
		Title:    title,
		Nouns:    copied,
		Test:     test,
		Group:    group,
	}
}

func (r Record) clone() Record {
	r.Nouns = slices.Clone(r.Nouns)
	if r.Nouns == nil {
		r.Nouns = []string{}
	}
	return r
}

// Fallback returns the built-in records served when no source could be loaded.
func Fallback() []Record {
	return []Record{
		NewRecord(
			"The cat sat on the mat near the window.",
			"",
			[]string{"cat", "mat", "window"},
			DefaultTag,
			DefaultTag,
		),
		NewRecord(
			"John bought a new car from the dealership yesterday.",
			"",
			[]string{"John", "car", "dealership"},
			DefaultTag,
			DefaultTag,
		),
	}
}
