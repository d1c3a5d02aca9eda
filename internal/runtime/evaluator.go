package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/aretw0/sail/internal/compiler"
	"github.com/aretw0/sail/internal/logging"
	"github.com/aretw0/sail/pkg/domain"
)

// Evaluator turns SAIL source into a node tree.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates an Evaluator. A nil logger discards output.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Evaluator{logger: logger}
}

// Evaluate runs source against state. It never panics and never returns a
// Go error: every failure is carried by Result.Err.
func (e *Evaluator) Evaluate(ctx context.Context, source string, state *domain.State) (res domain.Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Evaluate: recovered panic", "panic", r)
			res = domain.Result{Err: &domain.EvaluationError{
				Kind:    domain.ErrorType,
				Message: fmt.Sprint(r),
			}}
		}
	}()

	prog, err := compiler.Parse(source)
	if err != nil {
		return domain.Result{Err: asEvaluationError(err)}
	}

	in := &interpreter{scope: NewScope(state)}
	value, evalErr := in.expression(prog.Expr)
	if evalErr != nil {
		e.logger.DebugContext(ctx, "Evaluate: runtime error", "err", evalErr)
		return domain.Result{Err: evalErr}
	}
	return domain.Result{Root: toRoot(value)}
}

func asEvaluationError(err error) *domain.EvaluationError {
	if ee, ok := err.(*domain.EvaluationError); ok {
		return ee
	}
	return &domain.EvaluationError{Kind: domain.ErrorSyntax, Message: err.Error()}
}

// toRoot maps the document value to the tree root. Absent values mean an
// empty document; objects with a string "type" are nodes; anything else is
// wrapped under its type name so the renderer can report it.
func toRoot(v any) *domain.Node {
	if isAbsent(v) {
		return nil
	}
	if node, ok := domain.AsNode(v); ok {
		return node
	}
	return &domain.Node{Kind: domain.Kind(typeName(v))}
}

type interpreter struct {
	scope *Scope
}

func failAt(kind domain.ErrorKind, pos lexer.Position, format string, args ...any) *domain.EvaluationError {
	return &domain.EvaluationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
		Column:  pos.Column,
	}
}

func (in *interpreter) expression(x *compiler.Expression) (any, *domain.EvaluationError) {
	left, err := in.and(x.Left)
	if err != nil {
		return nil, err
	}
	for _, operand := range x.Right {
		if truthy(left) {
			return left, nil
		}
		if left, err = in.and(operand); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (in *interpreter) and(x *compiler.And) (any, *domain.EvaluationError) {
	left, err := in.equality(x.Left)
	if err != nil {
		return nil, err
	}
	for _, operand := range x.Right {
		if !truthy(left) {
			return left, nil
		}
		if left, err = in.equality(operand); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (in *interpreter) equality(x *compiler.Equality) (any, *domain.EvaluationError) {
	left, err := in.unary(x.Left)
	if err != nil {
		return nil, err
	}
	for _, cmp := range x.Rest {
		right, err := in.unary(cmp.Right)
		if err != nil {
			return nil, err
		}
		switch cmp.Op {
		case "===":
			left = strictEqual(left, right)
		case "!==":
			left = !strictEqual(left, right)
		case "==":
			left = looseEqual(left, right)
		case "!=":
			left = !looseEqual(left, right)
		}
	}
	return left, nil
}

func (in *interpreter) unary(x *compiler.Unary) (any, *domain.EvaluationError) {
	v, err := in.postfix(x.Operand)
	if err != nil {
		return nil, err
	}
	for i := len(x.Ops) - 1; i >= 0; i-- {
		switch x.Ops[i] {
		case "!":
			v = !truthy(v)
		case "-":
			v = -toNumber(v)
		}
	}
	return v, nil
}

func (in *interpreter) primary(x *compiler.Primary) (any, *domain.EvaluationError) {
	switch {
	case x.String != nil:
		s, err := compiler.Unquote(*x.String)
		if err != nil {
			return nil, failAt(domain.ErrorSyntax, x.Pos, "invalid string literal")
		}
		return s, nil
	case x.Number != nil:
		return *x.Number, nil
	case x.True:
		return true, nil
	case x.False:
		return false, nil
	case x.Null:
		return nil, nil
	case x.Undefined:
		return domain.Undefined, nil
	case x.Object != nil:
		return in.object(x.Object)
	case x.Array != nil:
		return in.array(x.Array)
	case x.Reference != nil:
		return in.reference(x.Reference)
	case x.Group != nil:
		return in.expression(x.Group)
	}
	return nil, failAt(domain.ErrorSyntax, x.Pos, "unexpected expression")
}

func (in *interpreter) object(x *compiler.Object) (any, *domain.EvaluationError) {
	out := make(map[string]any, len(x.Props))
	for _, p := range x.Props {
		key := p.Key
		if len(key) > 0 && (key[0] == '"' || key[0] == '\'') {
			unquoted, err := compiler.Unquote(key)
			if err != nil {
				return nil, failAt(domain.ErrorSyntax, p.Pos, "invalid property name")
			}
			key = unquoted
		}
		v, err := in.expression(p.Value)
		if err != nil {
			return nil, err
		}
		out[key] = jsonSafe(v)
	}
	if node, ok := domain.NodeFromObject(out); ok {
		return node, nil
	}
	return out, nil
}

func (in *interpreter) array(x *compiler.Array) (any, *domain.EvaluationError) {
	out := make([]any, 0, len(x.Items))
	for _, item := range x.Items {
		v, err := in.expression(item)
		if err != nil {
			return nil, err
		}
		out = append(out, jsonSafe(v))
	}
	return out, nil
}

func (in *interpreter) reference(x *compiler.Reference) (any, *domain.EvaluationError) {
	v, ok := in.scope.Lookup(x.Name)
	if !ok {
		return nil, failAt(domain.ErrorReference, x.Pos, "%s is not defined", x.Name)
	}

	if x.Call != nil {
		fn, ok := v.(*Builtin)
		if !ok {
			return nil, failAt(domain.ErrorType, x.Call.Pos, "%s is not a function", x.Name)
		}
		args := make([]any, 0, len(x.Call.Args))
		for _, a := range x.Call.Args {
			av, err := in.expression(a)
			if err != nil {
				return nil, err
			}
			args = append(args, av)
		}
		v = fn.Call(args)
	}
	return v, nil
}

func (in *interpreter) postfix(x *compiler.Postfix) (any, *domain.EvaluationError) {
	v, err := in.primary(x.Primary)
	if err != nil {
		return nil, err
	}
	for _, acc := range x.Accessors {
		var key string
		if acc.Field != nil {
			key = *acc.Field
		} else {
			kv, err := in.expression(acc.Index)
			if err != nil {
				return nil, err
			}
			key = propertyKey(kv)
		}
		if isAbsent(v) {
			return nil, failAt(domain.ErrorType, acc.Pos,
				"Cannot read properties of %s (reading '%s')", typeName(v), key)
		}
		v = property(v, key)
	}
	return v, nil
}

// jsonSafe replaces values JSON cannot represent with null before they are
// stored in a tree.
func jsonSafe(v any) any {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
	case *Builtin:
		return nil
	}
	return v
}
