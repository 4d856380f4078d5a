package database

import (
	"fmt"
	"strings"
)

type selectQuery struct {
	table   string
	columns string
	filters []string
	args    []interface{}
	orderBy string
	limit   int
}

func newSelectQuery(table string, columns []string) *selectQuery {
	return &selectQuery{table: table, columns: strings.Join(columns, ", ")}
}

func (q *selectQuery) Where(filter string, args ...interface{}) *selectQuery {
	q.filters = append(q.filters, filter)
	q.args = append(q.args, args...)
	return q
}

func (q *selectQuery) WhereDeleted(deleted bool) *selectQuery {
	if deleted {
		return q.Where("is_deleted = 1")
	}
	return q.Where("is_deleted = 0")
}

func (q *selectQuery) WhereIn(column string, values []string) *selectQuery {
	if len(values) == 0 {
		return q.Where("1 = 0")
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return q.Where(fmt.Sprintf("%s IN (%s)", column, marks), args...)
}

func (q *selectQuery) OrderBy(orderBy string) *selectQuery {
	q.orderBy = orderBy
	return q
}

func (q *selectQuery) Limit(limit int) *selectQuery {
	q.limit = limit
	return q
}

func (q *selectQuery) Build() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s", q.columns, q.table)
	if len(q.filters) > 0 {
		query += " WHERE " + strings.Join(q.filters, " AND ")
	}
	if q.orderBy != "" {
		query += " ORDER BY " + q.orderBy
	}
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}
	return query, q.args
}
