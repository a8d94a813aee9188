package filterexpr

// ValueKind describes the kind of literal value a field accepts.
type ValueKind string

const (
	KindString    ValueKind = "string"
	KindNumber    ValueKind = "number"
	KindTimestamp ValueKind = "timestamp"
)

// Op represents a supported comparison operation.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
)

// FilterField maps a CEL identifier to a SQL column and the operators it
// may be used with.
type FilterField struct {
	Column string
	Kind   ValueKind
	Ops    []Op
	// Fold compares strings case-insensitively.
	Fold bool
}

func (f FilterField) allows(op Op) bool {
	for _, candidate := range f.Ops {
		if candidate == op {
			return true
		}
	}
	return false
}

// OrderField maps an order key to a SQL expression.
type OrderField struct {
	Expr string
}

// OrderSchema describes ordering defaults and whitelisted keys.
type OrderSchema struct {
	DefaultPrimary     string
	DefaultPrimaryDesc bool
	FallbackKey        string
	FallbackDesc       bool
	Fields             map[string]OrderField
}

// ResourceSchema aggregates filtering and ordering rules for a resource.
type ResourceSchema struct {
	Filter map[string]FilterField
	Order  OrderSchema
}
