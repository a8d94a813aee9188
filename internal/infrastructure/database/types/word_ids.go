package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// WordIDList is the JSON array column holding a saved practice selection.
type WordIDList []int64

// Scan implements sql.Scanner. Entries that are not numbers are dropped so a
// hand-edited row cannot break reads.
func (l *WordIDList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("WordIDList: unsupported src type %T", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}

	var raw []json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("WordIDList: %w", err)
	}
	out := make(WordIDList, 0, len(raw))
	for _, n := range raw {
		id, err := n.Int64()
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	*l = out
	return nil
}

// Value implements driver.Valuer. An empty list is stored as "[]", never NULL.
func (l WordIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int64(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
