package entity

import "time"

// MasteryThreshold is the streak at which a word counts as mastered.
const MasteryThreshold = 3

// MasteryFrom derives the mastered flag from a streak. Every write of a
// progress row goes through it so the flag never drifts from the streak.
func MasteryFrom(streak int) bool {
	return streak >= MasteryThreshold
}

// Progress is the learner's state for one word. A missing row means the word
// was never attempted and is unmastered.
type Progress struct {
	UserID         UserID
	WordID         int64
	CorrectStreak  int
	IsMastered     bool
	LastAnsweredAt time.Time
}

// NewProgress returns the implicit state of a never attempted word.
func NewProgress(userID UserID, wordID int64) *Progress {
	return &Progress{UserID: userID, WordID: wordID}
}

// Answer returns the state after grading one attempt.
func (p Progress) Answer(correct bool, now time.Time) Progress {
	next := p
	if correct {
		next.CorrectStreak = p.CorrectStreak + 1
	} else {
		next.CorrectStreak = 0
	}
	next.IsMastered = MasteryFrom(next.CorrectStreak)
	next.LastAnsweredAt = now
	return next
}

// Reset returns the state after an explicit "not mastered" reset.
func (p Progress) Reset(now time.Time) Progress {
	next := p
	next.CorrectStreak = 0
	next.IsMastered = MasteryFrom(0)
	next.LastAnsweredAt = now
	return next
}

// SubmitResult is the outcome of grading an attempt.
type SubmitResult struct {
	Correct         bool
	CorrectSpelling string
	Progress        Progress
}
