package domain

import "strings"

// Wildcard selects every column of the resolved table.
const Wildcard = "*"

// Query is the parsed form of a select statement.
type Query struct {
	Fields     []string
	Source     string
	Conditions []Condition
}

// Condition restricts one column. Values are alternatives: a row matches
// when its cell contains any of them.
type Condition struct {
	Field  string
	Values []string
}

// SelectsAll reports whether the query uses the "*" field list.
func (q Query) SelectsAll() bool {
	return len(q.Fields) == 1 && q.Fields[0] == Wildcard
}

// String renders the canonical text of the query. Parsing the result yields
// an equal Query.
func (q Query) String() string {
	var b strings.Builder
	b.WriteString("select ")
	b.WriteString(strings.Join(q.Fields, ","))
	b.WriteString(" from ")
	b.WriteString(q.Source)
	for i, c := range q.Conditions {
		if i == 0 {
			b.WriteString(" where ")
		} else {
			b.WriteString(" and ")
		}
		b.WriteString(c.String())
	}
	return b.String()
}

func (c Condition) String() string {
	vals := make([]string, len(c.Values))
	for i, v := range c.Values {
		vals[i] = quoteValue(v)
	}
	return c.Field + " = " + strings.Join(vals, " or ")
}

// quoteValue entrecomilla los valores que no sobrevivirían al lexer como
// palabras sueltas.
func quoteValue(v string) string {
	needs := strings.ContainsAny(v, "=\"'") || v != strings.TrimSpace(v)
	for _, w := range strings.Fields(v) {
		switch strings.ToLower(w) {
		case "and", "or":
			needs = true
		}
	}
	if !needs {
		return v
	}
	if strings.Contains(v, `"`) {
		return "'" + v + "'"
	}
	return `"` + v + `"`
}

// Equal compares two queries field by field.
func (q Query) Equal(other Query) bool {
	if q.Source != other.Source || !equalStrings(q.Fields, other.Fields) {
		return false
	}
	if len(q.Conditions) != len(other.Conditions) {
		return false
	}
	for i := range q.Conditions {
		if q.Conditions[i].Field != other.Conditions[i].Field ||
			!equalStrings(q.Conditions[i].Values, other.Conditions[i].Values) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
