package entity

// Stats summarises mastery globally and, optionally, within a session subset.
type Stats struct {
	Total           int64
	Mastered        int64
	SessionTotal    *int64
	SessionMastered *int64
}

// Percent returns the mastered share of the active scope, session when
// present, clamped to [0,100].
func (s Stats) Percent() int {
	if s.SessionTotal != nil && s.SessionMastered != nil {
		return percent(*s.SessionMastered, *s.SessionTotal)
	}
	return percent(s.Mastered, s.Total)
}

func percent(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	p := int(part * 100 / whole)
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
