// Package ast defines the statement AST (Abstract Syntax Tree) consumed by the compiler.
package ast

// Kind represents the type of statement
type Kind int

const (
	KindSelect Kind = iota + 1
	KindInsert
	KindUpdate
	KindDelete
)

// String returns the SQL verb of the statement kind
func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "SELECT"
	case KindInsert:
		return "INSERT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	default:
		return ""
	}
}

// Slot is a clause category of a statement
type Slot int

const (
	SlotType Slot = iota + 1
	SlotTable
	SlotFrom
	SlotColumns
	SlotJoin
	SlotSet
	SlotValues
	SlotSelect
	SlotWhere
	SlotGroupBy
	SlotHaving
	SlotOrderBy
	SlotLimit
	SlotOffset
)

var slotNames = map[Slot]string{
	SlotType:    "TYPE",
	SlotTable:   "TABLE",
	SlotFrom:    "FROM",
	SlotColumns: "COLUMNS",
	SlotJoin:    "JOIN",
	SlotSet:     "SET",
	SlotValues:  "VALUES",
	SlotSelect:  "SELECT",
	SlotWhere:   "WHERE",
	SlotGroupBy: "GROUP_BY",
	SlotHaving:  "HAVING",
	SlotOrderBy: "ORDER_BY",
	SlotLimit:   "LIMIT",
	SlotOffset:  "OFFSET",
}

func (s Slot) String() string { return slotNames[s] }

// layouts is the render order of the slots of every statement kind.
// It never depends on the order in which the slots were filled.
var layouts = map[Kind][]Slot{
	KindSelect: {SlotType, SlotColumns, SlotFrom, SlotJoin, SlotWhere, SlotGroupBy, SlotHaving, SlotOrderBy, SlotLimit, SlotOffset},
	KindInsert: {SlotType, SlotTable, SlotColumns, SlotSet, SlotValues, SlotSelect},
	KindUpdate: {SlotType, SlotTable, SlotJoin, SlotSet, SlotWhere, SlotOrderBy, SlotLimit},
	KindDelete: {SlotType, SlotTable, SlotFrom, SlotJoin, SlotWhere, SlotOrderBy, SlotLimit},
}

// Layout returns the slots of a statement kind in render order.
// The returned slice is a copy.
func Layout(kind Kind) []Slot {
	slots := layouts[kind]
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// Statement is one SELECT, INSERT, UPDATE or DELETE statement.
//
// Each field is a clause slot. Which slots are rendered, and in which
// order, is decided by Layout(Kind). A Statement is mutated by the builder
// package only; the compiler reads it and never writes to it.
type Statement struct {
	Kind    Kind
	Type    string
	Table   []Aliased
	From    []Aliased
	Columns []Aliased
	Join    []Join
	Set     []Set
	Values  [][]any
	Select  *Statement
	Where   []Condition
	GroupBy []Direction
	Having  []Condition
	OrderBy []Direction
	Limit   *int
	Offset  *int
}

// NewStatement creates an empty statement of the given kind
func NewStatement(kind Kind) *Statement {
	return &Statement{Kind: kind}
}

// IsEmpty reports whether no slot of the statement holds anything
func (s *Statement) IsEmpty() bool {
	return s.Type == "" &&
		len(s.Table) == 0 &&
		len(s.From) == 0 &&
		len(s.Columns) == 0 &&
		len(s.Join) == 0 &&
		len(s.Set) == 0 &&
		len(s.Values) == 0 &&
		s.Select == nil &&
		len(s.Where) == 0 &&
		len(s.GroupBy) == 0 &&
		len(s.Having) == 0 &&
		len(s.OrderBy) == 0 &&
		s.Limit == nil &&
		s.Offset == nil
}

// Clone returns a deep copy of the slot lists so the copy can be mutated
// without affecting s. Bound values themselves are shared.
func (s *Statement) Clone() *Statement {
	if s == nil {
		return nil
	}
	c := &Statement{
		Kind:    s.Kind,
		Type:    s.Type,
		Table:   append([]Aliased(nil), s.Table...),
		From:    append([]Aliased(nil), s.From...),
		Columns: append([]Aliased(nil), s.Columns...),
		Join:    append([]Join(nil), s.Join...),
		Set:     append([]Set(nil), s.Set...),
		Select:  s.Select.Clone(),
		Where:   append([]Condition(nil), s.Where...),
		GroupBy: append([]Direction(nil), s.GroupBy...),
		Having:  append([]Condition(nil), s.Having...),
		OrderBy: append([]Direction(nil), s.OrderBy...),
	}
	for _, row := range s.Values {
		c.Values = append(c.Values, append([]any(nil), row...))
	}
	if s.Limit != nil {
		limit := *s.Limit
		c.Limit = &limit
	}
	if s.Offset != nil {
		offset := *s.Offset
		c.Offset = &offset
	}
	return c
}
