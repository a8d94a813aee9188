package entity

// UserID identifies the learner whose progress is read or written.
type UserID int64

// DefaultUserID is the single learner the trainer serves.
const DefaultUserID UserID = 1

// Valid reports whether the id can own progress rows.
func (u UserID) Valid() bool {
	return u > 0
}
