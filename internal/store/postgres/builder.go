package postgres

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/golfcompete/golf-server/internal/store"
)

// buildPredicates maps store-agnostic filter conditions to squirrel predicates
func buildPredicates(conditions []store.Condition) ([]squirrel.Sqlizer, error) {
	if len(conditions) == 0 {
		return nil, nil
	}
	predicates := make([]squirrel.Sqlizer, 0, len(conditions))
	for _, condition := range conditions {
		predicate, err := buildPredicate(condition)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, predicate)
	}
	return predicates, nil
}

func buildPredicate(condition store.Condition) (squirrel.Sqlizer, error) {
	switch condition.Operator {
	case store.OperatorEq:
		return squirrel.Eq{condition.Column: condition.Value}, nil
	case store.OperatorNeq:
		return squirrel.NotEq{condition.Column: condition.Value}, nil
	case store.OperatorGt:
		return squirrel.Gt{condition.Column: condition.Value}, nil
	case store.OperatorGte:
		return squirrel.GtOrEq{condition.Column: condition.Value}, nil
	case store.OperatorLt:
		return squirrel.Lt{condition.Column: condition.Value}, nil
	case store.OperatorLte:
		return squirrel.LtOrEq{condition.Column: condition.Value}, nil
	case store.OperatorLike:
		return squirrel.Like{condition.Column: condition.Value}, nil
	case store.OperatorILike:
		return squirrel.ILike{condition.Column: condition.Value}, nil
	case store.OperatorIn:
		// squirrel renders slice values of Eq as an IN clause
		return squirrel.Eq{condition.Column: condition.Value}, nil
	case store.OperatorContains:
		return squirrel.Expr(condition.Column+" @> ?", condition.Value), nil
	default:
		return nil, fmt.Errorf("unsupported filter operator '%s'", condition.Operator)
	}
}
