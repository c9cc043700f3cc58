package repository

import (
	"fmt"
	"strings"

	"github.com/studyhive-labs/studyhive-api/internal/models"
)

// listingQuery accumulates WHERE fragments and their arguments. The same
// instance feeds both the paginated SELECT and its COUNT twin, so a listing
// and its reported total can never be built from diverging filters.
type listingQuery struct {
	conditions []string
	args       []interface{}
}

// condition appends a fragment whose %d verbs are replaced with the positional
// placeholder indices of the supplied values.
func (q *listingQuery) condition(fragment string, values ...interface{}) {
	placeholders := make([]interface{}, len(values))
	for i, value := range values {
		q.args = append(q.args, value)
		placeholders[i] = len(q.args)
	}
	q.conditions = append(q.conditions, fmt.Sprintf(fragment, placeholders...))
}

// search adds a case-insensitive substring match on the given column. An
// empty search term adds nothing and therefore matches every row.
func (q *listingQuery) search(column, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	q.condition("LOWER("+column+") LIKE $%d", "%"+strings.ToLower(term)+"%")
}

// registrationWindow maps the ongoing/closed filter token onto a calendar-date
// comparison against the given date column. Unknown tokens are ignored.
func (q *listingQuery) registrationWindow(column, filter string) {
	switch filter {
	case models.FilterOngoing:
		q.conditions = append(q.conditions, column+" >= CURRENT_DATE")
	case models.FilterClosed:
		q.conditions = append(q.conditions, column+" < CURRENT_DATE")
	}
}

func (q *listingQuery) whereClause() string {
	if len(q.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conditions, " AND ")
}

// sortClause maps the asc/desc token onto the designated column, falling back
// to the storage default order for anything else.
func sortClause(column, token string) string {
	switch strings.ToLower(token) {
	case models.SortAscending:
		return " ORDER BY " + column + " ASC"
	case models.SortDescending:
		return " ORDER BY " + column + " DESC"
	default:
		return ""
	}
}

func limitClause(params models.ListingParams) string {
	n := params.Normalize()
	return fmt.Sprintf(" LIMIT %d OFFSET %d", n.Size, params.Offset())
}
