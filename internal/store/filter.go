package store

// Operator represents a named filter predicate understood by every store client
type Operator string

const (
	OperatorEq       Operator = "eq"
	OperatorNeq      Operator = "neq"
	OperatorGt       Operator = "gt"
	OperatorGte      Operator = "gte"
	OperatorLt       Operator = "lt"
	OperatorLte      Operator = "lte"
	OperatorLike     Operator = "like"
	OperatorILike    Operator = "ilike"
	OperatorIn       Operator = "in"
	OperatorContains Operator = "contains"
)

// Operators contains every known filter operator
var Operators = map[Operator]struct{}{
	OperatorEq:       {},
	OperatorNeq:      {},
	OperatorGt:       {},
	OperatorGte:      {},
	OperatorLt:       {},
	OperatorLte:      {},
	OperatorLike:     {},
	OperatorILike:    {},
	OperatorIn:       {},
	OperatorContains: {},
}

// Condition represents a single store-agnostic filter predicate on a column
type Condition struct {
	Column   string
	Operator Operator
	Value    any
}

// Eq builds an equality condition
func Eq(column string, value any) Condition {
	return Condition{Column: column, Operator: OperatorEq, Value: value}
}

// Ordering represents the ordering applied to a selection
type Ordering struct {
	Column     string
	Descending bool
}

// Selection represents the full shape of a read query: filter conditions, an optional ordering
// and an offset & limit window
type Selection struct {
	Conditions []Condition
	Order      *Ordering
	Offset     uint64
	Limit      uint64
}
