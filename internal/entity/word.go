package entity

import (
	"strings"
	"time"
)

// Word is a vocabulary entry in the bank.
type Word struct {
	ID                int64     `json:"word_id"`
	EnglishWord       string    `json:"english_word"`
	ChineseDefinition string    `json:"chinese_definition"`
	ExampleSentenceEN string    `json:"example_sentence_en,omitempty"`
	ExampleSentenceCN string    `json:"example_sentence_cn,omitempty"`
	WeekTag           string    `json:"week_tag,omitempty"`
	CreatedAt         time.Time `json:"added_timestamp"`
}

// WordListItem is a word annotated with the learner's state.
type WordListItem struct {
	Word
	IsMastered bool `json:"is_mastered"`
	IsSelected bool `json:"is_selected"`
}

// Normalize trims user supplied text.
func (w *Word) Normalize() {
	w.EnglishWord = strings.TrimSpace(w.EnglishWord)
	w.ChineseDefinition = strings.TrimSpace(w.ChineseDefinition)
	w.ExampleSentenceEN = strings.TrimSpace(w.ExampleSentenceEN)
	w.ExampleSentenceCN = strings.TrimSpace(w.ExampleSentenceCN)
	w.WeekTag = strings.TrimSpace(w.WeekTag)
}

// Validate checks the fields every stored word must carry.
func (w *Word) Validate() error {
	if w.EnglishWord == "" || w.ChineseDefinition == "" {
		return ErrInvalidWordText
	}
	return nil
}

// SpellingMatches grades an attempt against the stored spelling. The attempt
// is trimmed and both sides compare case-insensitively.
func SpellingMatches(stored, attempt string) bool {
	return strings.EqualFold(strings.TrimSpace(attempt), stored)
}
