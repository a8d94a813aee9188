package repository

import "github.com/eslsoft/spellnet/pkg/filterexpr"

var listWordsSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"english_word": {
			Column: "english_word",
			Kind:   filterexpr.KindString,
			Ops:    []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpSW, filterexpr.OpIN},
			Fold:   true,
		},
		"chinese_definition": {
			Column: "chinese_definition",
			Kind:   filterexpr.KindString,
			Ops:    []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpSW},
		},
		"week_tag": {
			Column: "week_tag",
			Kind:   filterexpr.KindString,
			Ops:    []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpIN, filterexpr.OpSW},
		},
		"word_id": {
			Column: "word_id",
			Kind:   filterexpr.KindNumber,
			Ops:    []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpGTE, filterexpr.OpLTE},
		},
		"added_timestamp": {
			Column: "added_timestamp",
			Kind:   filterexpr.KindTimestamp,
			Ops:    []filterexpr.Op{filterexpr.OpGTE, filterexpr.OpLTE},
		},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary:     "added_timestamp",
		DefaultPrimaryDesc: true,
		FallbackKey:        "word_id",
		FallbackDesc:       true,
		Fields: map[string]filterexpr.OrderField{
			"added_timestamp": {Expr: "added_timestamp"},
			"english_word":    {Expr: "lower(english_word)"},
			"week_tag":        {Expr: "week_tag"},
			"word_id":         {Expr: "word_id"},
		},
	},
}
