package sentence

import (
	"errors"
	"math/rand/v2"
	"slices"
	"sort"
)

var (
	ErrNotFound   = errors.New("sentence not found")
	ErrEmptyStore = errors.New("sentence store is empty")
)

// TitleEntry is a row of the title list.
type TitleEntry struct {
	Title string `json:"title"`
	Test  string `json:"test"`
	Group string `json:"group"`
}

// Catalog lists the groups and, per group, the tests that occur in it.
type Catalog struct {
	Groups       []string            `json:"groups"`
	TestsByGroup map[string][]string `json:"tests_by_group"`
}

// Store is an ordered, read-only collection of records. It is safe for
// concurrent use because nothing writes to it after NewStore returns.
type Store struct {
	records []Record
	intN    func(n int) int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithRandom replaces the source used by Random; intN must return a value in [0, n).
func WithRandom(intN func(n int) int) StoreOption {
	return func(s *Store) {
		s.intN = intN
	}
}

// NewStore copies records into a new Store.
func NewStore(records []Record, opts ...StoreOption) *Store {
	copied := make([]Record, 0, len(records))
	for _, r := range records {
		copied = append(copied, r.clone())
	}
	s := &Store{
		records: copied,
		intN:    rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns a copy of all records in source order.
func (s *Store) Records() []Record {
	result := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		result = append(result, r.clone())
	}
	return result
}

// Random picks a record uniformly.
func (s *Store) Random() (Record, error) {
	if len(s.records) == 0 {
		return Record{}, ErrEmptyStore
	}
	return s.records[s.intN(len(s.records))].clone(), nil
}

// FindByTitle returns the first record with exactly this title.
func (s *Store) FindByTitle(title string) (Record, error) {
	for _, r := range s.records {
		if r.Title == title {
			return r.clone(), nil
		}
	}
	return Record{}, ErrNotFound
}

// FindBySentence returns the first record with exactly this sentence text.
func (s *Store) FindBySentence(text string) (Record, error) {
	for _, r := range s.records {
		if r.Sentence == text {
			return r.clone(), nil
		}
	}
	return Record{}, ErrNotFound
}

// CheckAnswer grades submitted against the record whose sentence is
// sentenceText. An unknown sentence has an empty answer key.
func (s *Store) CheckAnswer(sentenceText string, submitted []string) AnswerResult {
	record, err := s.FindBySentence(sentenceText)
	if err != nil {
		return AnswerResult{
			IsCorrect:    IsCorrect(nil, submitted),
			CorrectNouns: []string{},
			Found:        false,
		}
	}
	return CheckAnswer(record, submitted)
}

// ListTitles returns the titles in store order, limited to one test when test is not empty.
func (s *Store) ListTitles(test string) []TitleEntry {
	result := make([]TitleEntry, 0, len(s.records))
	for _, r := range s.records {
		if test != "" && r.Test != test {
			continue
		}
		result = append(result, TitleEntry{
			Title: r.Title,
			Test:  r.Test,
			Group: r.Group,
		})
	}
	return result
}

// Catalog derives the group and test sets from the records. Both lists are sorted.
func (s *Store) Catalog() Catalog {
	testsByGroup := make(map[string]map[string]bool)
	for _, r := range s.records {
		tests, ok := testsByGroup[r.Group]
		if !ok {
			tests = make(map[string]bool)
			testsByGroup[r.Group] = tests
		}
		tests[r.Test] = true
	}

	catalog := Catalog{
		Groups:       make([]string, 0, len(testsByGroup)),
		TestsByGroup: make(map[string][]string, len(testsByGroup)),
	}
	for group, tests := range testsByGroup {
		catalog.Groups = append(catalog.Groups, group)
		names := make([]string, 0, len(tests))
		for test := range tests {
			names = append(names, test)
		}
		sort.Strings(names)
		catalog.TestsByGroup[group] = names
	}
	slices.Sort(catalog.Groups)
	return catalog
}
