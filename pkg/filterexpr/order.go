package filterexpr

import (
	"errors"
	"fmt"
	"strings"
)

type orderParams struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

// OrderBy validates an order_by expression such as "english_word desc,
// word_id" and renders it as an ORDER BY list. At most two keys are accepted;
// the schema fallback key is appended for stable ordering.
func OrderBy(raw string, schema OrderSchema) (string, error) {
	ord, err := parseOrderBy(raw, schema)
	if err != nil {
		return "", err
	}
	return orderTerm(schema.Fields[ord.PrimaryKey], ord.PrimaryDesc) + ", " +
		orderTerm(schema.Fields[ord.SecondaryKey], ord.SecondaryDesc), nil
}

func orderTerm(field OrderField, desc bool) string {
	if desc {
		return field.Expr + " DESC"
	}
	return field.Expr + " ASC"
}

func parseOrderBy(raw string, schema OrderSchema) (orderParams, error) { //nolint:gocognit,gocyclo // parsing DSL entails validation branches for readability
	if schema.DefaultPrimary == "" {
		return orderParams{}, errors.New("order schema default primary key required")
	}
	if schema.FallbackKey == "" {
		return orderParams{}, errors.New("order schema fallback key required")
	}
	if _, ok := schema.Fields[schema.DefaultPrimary]; !ok {
		return orderParams{}, fmt.Errorf("order key %q missing from schema fields", schema.DefaultPrimary)
	}
	if _, ok := schema.Fields[schema.FallbackKey]; !ok {
		return orderParams{}, fmt.Errorf("fallback order key %q missing from schema fields", schema.FallbackKey)
	}

	ord := orderParams{
		PrimaryKey:    schema.DefaultPrimary,
		PrimaryDesc:   schema.DefaultPrimaryDesc,
		SecondaryKey:  schema.FallbackKey,
		SecondaryDesc: schema.FallbackDesc,
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ord, nil
	}

	seen := map[string]struct{}{}
	idx := 0
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		key := parts[0]
		if _, ok := schema.Fields[key]; !ok {
			return orderParams{}, fmt.Errorf("field %q cannot be used for ordering", key)
		}

		var desc bool
		switch len(parts) {
		case 1:
		case 2:
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return orderParams{}, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
			}
		default:
			return orderParams{}, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}

		if _, dup := seen[key]; dup {
			return orderParams{}, fmt.Errorf("duplicate order key %q", key)
		}
		seen[key] = struct{}{}

		switch idx {
		case 0:
			ord.PrimaryKey = key
			ord.PrimaryDesc = desc
			ord.SecondaryKey = schema.FallbackKey
			ord.SecondaryDesc = schema.FallbackDesc
		case 1:
			ord.SecondaryKey = key
			ord.SecondaryDesc = desc
		default:
			return orderParams{}, errors.New("order_by supports at most two keys")
		}
		idx++
	}

	if ord.SecondaryKey == ord.PrimaryKey {
		// Primary already is the fallback; pick a distinct key so ties stay
		// deterministic.
		ord.SecondaryKey = ""
		for key := range schema.Fields {
			if key != ord.PrimaryKey && (ord.SecondaryKey == "" || key < ord.SecondaryKey) {
				ord.SecondaryKey = key
			}
		}
		ord.SecondaryDesc = false
		if ord.SecondaryKey == "" {
			return orderParams{}, errors.New("order schema requires at least two distinct keys for stable ordering")
		}
	}

	return ord, nil
}
