package sentence

import "strings"

// AnswerResult is the outcome of checking a submission.
type AnswerResult struct {
	IsCorrect    bool     `json:"is_correct"`
	CorrectNouns []string `json:"correct_nouns"`
	// Found is false when no record matched the sentence text.
	Found bool `json:"-"`
}

// Normalize lower-cases and trims every element.
func Normalize(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, strings.ToLower(strings.TrimSpace(v)))
	}
	return result
}

// IsCorrect applies the size-plus-subset rule: the submission must have as
// many elements as the key and each submitted element must be in the key.
// A repeated correct noun can therefore stand in for a missing one.
func IsCorrect(key, submitted []string) bool {
	normalizedKey := Normalize(key)
	normalizedSubmitted := Normalize(submitted)
	if len(normalizedSubmitted) != len(normalizedKey) {
		return false
	}

	inKey := make(map[string]bool, len(normalizedKey))
	for _, k := range normalizedKey {
		inKey[k] = true
	}
	for _, s := range normalizedSubmitted {
		if !inKey[s] {
			return false
		}
	}
	return true
}

// CheckAnswer grades submitted against the nouns of record.
func CheckAnswer(record Record, submitted []string) AnswerResult {
	return AnswerResult{
		IsCorrect:    IsCorrect(record.Nouns, submitted),
		CorrectNouns: Normalize(record.Nouns),
		Found:        true,
	}
}
