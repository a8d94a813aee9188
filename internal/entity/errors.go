package entity

import "errors"

// Domain errors for the word bank, progress and quiz aggregates.
var (
	ErrInvalidWordID     = errors.New("invalid word ID")
	ErrInvalidWordText   = errors.New("english word and chinese definition are required")
	ErrMissingAttempt    = errors.New("word_id and user_attempt are required")
	ErrInvalidSelection  = errors.New("selected_ids must be an array of word IDs")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrEmptyImport       = errors.New("import file is empty or has no data rows")
	ErrUnsupportedFormat = errors.New("unsupported import file format")

	ErrWordNotFound   = errors.New("word not found")
	ErrNoEligibleWord = errors.New("no word left to practise")

	ErrDuplicateWord = errors.New("english word already exists")
)

var sentinels = []error{
	ErrInvalidWordID,
	ErrInvalidWordText,
	ErrMissingAttempt,
	ErrInvalidSelection,
	ErrInvalidFilter,
	ErrEmptyImport,
	ErrUnsupportedFormat,
	ErrWordNotFound,
	ErrNoEligibleWord,
	ErrDuplicateWord,
}

// Cause returns the domain error err wraps, or nil when err carries none.
func Cause(err error) error {
	for _, target := range sentinels {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}

// ErrorKind classifies domain errors for transport mapping.
type ErrorKind int

const (
	KindStorage ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
)

// KindOf reports which taxonomy bucket err belongs to. Unknown errors are
// treated as storage failures.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidWordID),
		errors.Is(err, ErrInvalidWordText),
		errors.Is(err, ErrMissingAttempt),
		errors.Is(err, ErrInvalidSelection),
		errors.Is(err, ErrInvalidFilter),
		errors.Is(err, ErrEmptyImport),
		errors.Is(err, ErrUnsupportedFormat):
		return KindValidation
	case errors.Is(err, ErrWordNotFound), errors.Is(err, ErrNoEligibleWord):
		return KindNotFound
	case errors.Is(err, ErrDuplicateWord):
		return KindConflict
	default:
		return KindStorage
	}
}
