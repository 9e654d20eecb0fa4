package store

import (
	"fmt"
	"time"

	"brotech_admin/pkg/utils/validation"

	"gorm.io/gorm"
)

// Op is a filter comparison.
type Op string

const (
	OpEq  Op = "=="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpIn  Op = "in"
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

type Order struct {
	Field string
	Desc  bool
}

// Query is an immutable filter/order/limit description over named fields.
type Query struct {
	filters []Filter
	orders  []Order
	limit   int
}

func NewQuery() Query {
	return Query{}
}

func (q Query) Where(field string, op Op, value any) Query {
	q.filters = append(append([]Filter(nil), q.filters...), Filter{Field: field, Op: op, Value: value})
	return q
}

func (q Query) OrderBy(field string, desc bool) Query {
	q.orders = append(append([]Order(nil), q.orders...), Order{Field: field, Desc: desc})
	return q
}

func (q Query) Limit(n int) Query {
	q.limit = n
	return q
}

// apply translates field names through columns and adds clauses to tx.
func (q Query) apply(tx *gorm.DB, columns map[string]string) (*gorm.DB, error) {
	for _, f := range q.filters {
		if t, ok := f.Value.(time.Time); ok {
			f.Value = t.UTC()
		}
		col, ok := columns[f.Field]
		if !ok {
			return nil, &validation.ValidationError{Field: f.Field, Message: "unknown field"}
		}
		switch f.Op {
		case OpEq, OpGt, OpGte, OpLt, OpLte:
			op := string(f.Op)
			if f.Op == OpEq {
				op = "="
			}
			tx = tx.Where(fmt.Sprintf("%s %s ?", col, op), f.Value)
		case OpIn:
			tx = tx.Where(fmt.Sprintf("%s IN ?", col), f.Value)
		default:
			return nil, &validation.ValidationError{Field: f.Field, Message: fmt.Sprintf("unsupported operator %q", f.Op)}
		}
	}
	for _, o := range q.orders {
		col, ok := columns[o.Field]
		if !ok {
			return nil, &validation.ValidationError{Field: o.Field, Message: "unknown field"}
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		tx = tx.Order(col + " " + dir)
	}
	if q.limit > 0 {
		tx = tx.Limit(q.limit)
	}
	return tx, nil
}
