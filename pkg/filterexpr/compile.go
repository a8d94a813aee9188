package filterexpr

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Clause is a SQL boolean fragment with positional "?" placeholders. An empty
// SQL means no restriction.
type Clause struct {
	SQL  string
	Args []any
}

// And joins non-empty clauses with AND.
func And(clauses ...Clause) Clause {
	var parts []string
	var args []any
	for _, c := range clauses {
		if c.SQL == "" {
			continue
		}
		parts = append(parts, "("+c.SQL+")")
		args = append(args, c.Args...)
	}
	return Clause{SQL: strings.Join(parts, " AND "), Args: args}
}

// Compile translates a CEL filter into a SQL clause. Only AND-joined
// comparisons on whitelisted fields are accepted.
func Compile(filter string, fields map[string]FilterField) (Clause, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return Clause{}, nil
	}

	if len(fields) == 0 {
		return Clause{}, errors.New("filter schema has no fields defined")
	}

	env, err := buildEnv(fields)
	if err != nil {
		return Clause{}, err
	}

	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return Clause{}, fmt.Errorf("invalid filter: %w", issues.Err())
	}

	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return Clause{}, fmt.Errorf("failed to convert AST: %w", err)
	}
	conjuncts, err := extractConjuncts(parsed.GetExpr())
	if err != nil {
		return Clause{}, err
	}

	clauses := make([]Clause, 0, len(conjuncts))
	for _, expr := range conjuncts {
		pred, err := parseAtomicPredicate(expr)
		if err != nil {
			return Clause{}, err
		}

		rule, ok := fields[pred.Field]
		if !ok {
			return Clause{}, fmt.Errorf("field %q is not allowed", pred.Field)
		}
		if !rule.allows(pred.Op) {
			return Clause{}, fmt.Errorf("operator %q is not allowed for field %q", string(pred.Op), pred.Field)
		}
		if err := validateLiteral(rule.Kind, pred.Op, pred.Value); err != nil {
			return Clause{}, fmt.Errorf("field %q: %w", pred.Field, err)
		}

		clauses = append(clauses, predicateSQL(rule, pred))
	}

	return And(clauses...), nil
}

type atomicPredicate struct {
	Field string
	Op    Op
	Value any
}

func predicateSQL(rule FilterField, pred atomicPredicate) Clause {
	column := rule.Column
	fold := rule.Fold && rule.Kind == KindString
	if fold {
		column = "lower(" + column + ")"
	}
	value := pred.Value
	switch v := value.(type) {
	case string:
		if fold {
			value = strings.ToLower(v)
		}
	case float64:
		// Integral numbers bind as integers so integer columns compare exactly.
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			value = int64(v)
		}
	}

	switch pred.Op {
	case OpGTE:
		return Clause{SQL: column + " >= ?", Args: []any{value}}
	case OpLTE:
		return Clause{SQL: column + " <= ?", Args: []any{value}}
	case OpSW:
		return Clause{SQL: column + " LIKE ? ESCAPE '\\'", Args: []any{escapeLike(value.(string)) + "%"}}
	case OpIN:
		list := value.([]string)
		args := make([]any, len(list))
		for i, item := range list {
			if fold {
				item = strings.ToLower(item)
			}
			args[i] = item
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(list)), ", ")
		return Clause{SQL: column + " IN (" + placeholders + ")", Args: args}
	default:
		return Clause{SQL: column + " = ?", Args: []any{value}}
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func buildEnv(fields map[string]FilterField) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields)+1)
	for name, rule := range fields {
		celType, err := celTypeForKind(rule.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

func celTypeForKind(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindNumber:
		return cel.DoubleType, nil
	case KindTimestamp:
		return cel.TimestampType, nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}

// extractConjuncts flattens nested binary AND chains.
func extractConjuncts(expr *exprpb.Expr) ([]*exprpb.Expr, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}

	call := expr.GetCallExpr()
	if call == nil {
		return []*exprpb.Expr{expr}, nil
	}

	switch call.Function {
	case "_&&_":
		if len(call.Args) < 2 || call.Target != nil {
			return nil, errors.New("logical AND must have at least two operands")
		}
		var result []*exprpb.Expr
		for _, arg := range call.Args {
			conjuncts, err := extractConjuncts(arg)
			if err != nil {
				return nil, err
			}
			result = append(result, conjuncts...)
		}
		return result, nil
	case "_||_", "_?_:_", "!_":
		return nil, fmt.Errorf("logical operator %q is not supported; only AND is allowed", call.Function)
	default:
		return []*exprpb.Expr{expr}, nil
	}
}

func parseAtomicPredicate(expr *exprpb.Expr) (atomicPredicate, error) {
	call := expr.GetCallExpr()
	if call == nil {
		return atomicPredicate{}, errors.New("unsupported expression; expected comparison or function call")
	}

	switch call.Function {
	case "_==_":
		return parseBinaryPredicate(call, OpEQ)
	case "_>=_":
		return parseBinaryPredicate(call, OpGTE)
	case "_<=_":
		return parseBinaryPredicate(call, OpLTE)
	case "@in":
		return parseInPredicate(call)
	case "startsWith":
		return parseStartsWith(call)
	default:
		return atomicPredicate{}, fmt.Errorf("function %q is not supported", call.Function)
	}
}

func parseBinaryPredicate(call *exprpb.Expr_Call, op Op) (atomicPredicate, error) {
	if call.Target != nil || len(call.Args) != 2 {
		return atomicPredicate{}, fmt.Errorf("operator %q expects two operands", string(op))
	}

	fieldName, err := parseFieldIdent(call.Args[0])
	if err != nil {
		return atomicPredicate{}, err
	}
	value, err := parseLiteral(call.Args[1])
	if err != nil {
		return atomicPredicate{}, err
	}
	return atomicPredicate{Field: fieldName, Op: op, Value: value}, nil
}

func parseInPredicate(call *exprpb.Expr_Call) (atomicPredicate, error) {
	if call.Target != nil || len(call.Args) != 2 {
		return atomicPredicate{}, errors.New("in operator expects two operands")
	}

	fieldName, err := parseFieldIdent(call.Args[0])
	if err != nil {
		return atomicPredicate{}, err
	}
	if call.Args[1].GetListExpr() == nil {
		return atomicPredicate{}, errors.New("right-hand side of in must be a list literal")
	}
	value, err := parseLiteral(call.Args[1])
	if err != nil {
		return atomicPredicate{}, err
	}
	return atomicPredicate{Field: fieldName, Op: OpIN, Value: value}, nil
}

func parseStartsWith(call *exprpb.Expr_Call) (atomicPredicate, error) {
	if call.Target == nil || len(call.Args) != 1 {
		return atomicPredicate{}, errors.New("startsWith must be called on a field with one argument")
	}

	fieldName, err := parseFieldIdent(call.Target)
	if err != nil {
		return atomicPredicate{}, err
	}
	value, err := parseLiteral(call.Args[0])
	if err != nil {
		return atomicPredicate{}, err
	}
	str, ok := value.(string)
	if !ok {
		return atomicPredicate{}, errors.New("startsWith requires a string literal argument")
	}
	return atomicPredicate{Field: fieldName, Op: OpSW, Value: str}, nil
}

func parseFieldIdent(expr *exprpb.Expr) (string, error) {
	ident := expr.GetIdentExpr()
	if ident == nil {
		return "", errors.New("left-hand side must be an identifier")
	}
	return ident.GetName(), nil
}

func parseLiteral(expr *exprpb.Expr) (any, error) {
	if constant := expr.GetConstExpr(); constant != nil {
		switch constant.ConstantKind.(type) {
		case *exprpb.Constant_StringValue:
			return constant.GetStringValue(), nil
		case *exprpb.Constant_Int64Value:
			return float64(constant.GetInt64Value()), nil
		case *exprpb.Constant_Uint64Value:
			return float64(constant.GetUint64Value()), nil
		case *exprpb.Constant_DoubleValue:
			return constant.GetDoubleValue(), nil
		default:
			return nil, fmt.Errorf("literal type %T is not supported", constant.ConstantKind)
		}
	}

	if list := expr.GetListExpr(); list != nil {
		elements := list.GetElements()
		values := make([]string, len(elements))
		for i, elem := range elements {
			val, err := parseLiteral(elem)
			if err != nil {
				return nil, fmt.Errorf("list literal element %d: %w", i, err)
			}
			str, ok := val.(string)
			if !ok {
				return nil, errors.New("list literal elements must be strings")
			}
			values[i] = str
		}
		return values, nil
	}

	if call := expr.GetCallExpr(); call != nil && call.Function == "timestamp" {
		return parseTimestamp(call)
	}

	return nil, errors.New("right-hand side must be a literal, list literal, or timestamp() call")
}

func parseTimestamp(call *exprpb.Expr_Call) (time.Time, error) {
	if call.Target != nil || len(call.Args) != 1 {
		return time.Time{}, errors.New("timestamp() expects a single string argument")
	}
	arg := call.Args[0].GetConstExpr()
	if arg == nil {
		return time.Time{}, errors.New("timestamp() argument must be a string literal")
	}
	str := arg.GetStringValue()
	if str == "" {
		return time.Time{}, errors.New("timestamp() argument must not be empty")
	}
	t, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp literal %q is not RFC3339", str)
	}
	return t.UTC(), nil
}

func validateLiteral(kind ValueKind, op Op, value any) error {
	switch kind {
	case KindString:
		if op == OpIN {
			list, ok := value.([]string)
			if !ok {
				return fmt.Errorf("expected list of %s literals", kind)
			}
			if len(list) == 0 {
				return errors.New("list literal must not be empty")
			}
			return nil
		}
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	case KindNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	case KindTimestamp:
		if _, ok := value.(time.Time); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	default:
		return fmt.Errorf("unsupported field kind %s", kind)
	}
	return nil
}
