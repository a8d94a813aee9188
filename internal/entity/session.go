package entity

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// WordIDSet is an ordered set of positive word ids. Ids may reference words
// that were deleted since the set was stored.
type WordIDSet struct {
	ids []int64
}

// NewWordIDSet drops non-positive ids and duplicates, keeping first-seen order.
func NewWordIDSet(ids []int64) WordIDSet {
	valid := lo.Filter(ids, func(id int64, _ int) bool { return id > 0 })
	return WordIDSet{ids: lo.Uniq(valid)}
}

// IDs returns a copy of the members.
func (s WordIDSet) IDs() []int64 {
	return append([]int64{}, s.ids...)
}

func (s WordIDSet) Len() int { return len(s.ids) }

func (s WordIDSet) Empty() bool { return len(s.ids) == 0 }

func (s WordIDSet) Contains(id int64) bool {
	return lo.Contains(s.ids, id)
}

// ParseIDList parses a comma separated id list such as "5,12,18". Entries
// that are not integers are discarded.
func ParseIDList(raw string) WordIDSet {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return WordIDSet{}
	}
	parsed := lo.FilterMap(strings.Split(raw, ","), func(part string, _ int) (int64, bool) {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		return id, err == nil
	})
	return NewWordIDSet(parsed)
}

// SessionSelection is the learner's saved practice subset. Updates replace
// the whole set.
type SessionSelection struct {
	UserID  UserID
	WordIDs WordIDSet
}
