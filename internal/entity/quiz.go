package entity

import "strings"

// QuizMode selects which pool the next quiz word is drawn from.
type QuizMode string

const (
	QuizModeNew     QuizMode = "new"
	QuizModeReview  QuizMode = "review"
	QuizModeSession QuizMode = "session"
)

// ParseQuizMode maps a raw mode string. The second return value is false when
// raw is empty; unknown values fall back to new.
func ParseQuizMode(raw string) (QuizMode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return QuizModeNew, false
	case string(QuizModeReview):
		return QuizModeReview, true
	case string(QuizModeSession):
		return QuizModeSession, true
	default:
		return QuizModeNew, true
	}
}

// QuizRequest describes a next-word request. SessionIDs only matter in
// session mode. When ModeExplicit is false the caller gave neither a mode nor
// ids, and the stored session selection is used as the default.
type QuizRequest struct {
	Mode         QuizMode
	SessionIDs   WordIDSet
	ModeExplicit bool
}

// QuizWord is the word handed to the client together with its letters in a
// shuffled order.
type QuizWord struct {
	Word
	JumbledLetters []string `json:"jumbled_letters"`
}
