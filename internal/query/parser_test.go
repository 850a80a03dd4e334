// internal/query/parser_test.go
package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"netsql/internal/core/domain"
)

func TestParse_Examples(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Query
	}{
		{
			name:  "wildcard with condition",
			input: "select * from interfaces where Last_Input = never",
			want: domain.Query{
				Fields:     []string{"*"},
				Source:     "interfaces",
				Conditions: []domain.Condition{{Field: "Last_Input", Values: []string{"never"}}},
			},
		},
		{
			name:  "field list without where",
			input: "select Interface,Name,Last_Input from interfaces",
			want: domain.Query{
				Fields: []string{"Interface", "Name", "Last_Input"},
				Source: "interfaces",
			},
		},
		{
			name:  "or alternatives",
			input: "select * from mac-addresses where year = 7 or 8",
			want: domain.Query{
				Fields:     []string{"*"},
				Source:     "mac-addresses",
				Conditions: []domain.Condition{{Field: "year", Values: []string{"7", "8"}}},
			},
		},
		{
			name:  "and chain with multi-word value",
			input: `select Interface from interfaces where Name = Reception PC and Status = connected or "notconnect"`,
			want: domain.Query{
				Fields: []string{"Interface"},
				Source: "interfaces",
				Conditions: []domain.Condition{
					{Field: "Name", Values: []string{"Reception PC"}},
					{Field: "Status", Values: []string{"connected", "notconnect"}},
				},
			},
		},
		{
			name:  "quoted values are not split on keywords",
			input: `select * from interfaces where Name = "Rock and Roll" or 'up or down' and Vlan = "10"`,
			want: domain.Query{
				Fields: []string{"*"},
				Source: "interfaces",
				Conditions: []domain.Condition{
					{Field: "Name", Values: []string{"Rock and Roll", "up or down"}},
					{Field: "Vlan", Values: []string{"10"}},
				},
			},
		},
		{
			name:  "upper case keywords and tight equal",
			input: "SELECT Port FROM ports WHERE Vlan=10",
			want: domain.Query{
				Fields:     []string{"Port"},
				Source:     "ports",
				Conditions: []domain.Condition{{Field: "Vlan", Values: []string{"10"}}},
			},
		},
		{
			name:  "words containing keywords are not split",
			input: "select * from neighbours where Platform = cisco WS-C2960 and Port = Gi1/0/48",
			want: domain.Query{
				Fields: []string{"*"},
				Source: "neighbours",
				Conditions: []domain.Condition{
					{Field: "Platform", Values: []string{"cisco WS-C2960"}},
					{Field: "Port", Values: []string{"Gi1/0/48"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "got %+v", got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"empty", "", "must start with select"},
		{"no select", "show * from interfaces", "must start with select"},
		{"no field list", "select from interfaces", "missing field list"},
		{"no from", "select * interfaces", "expected from"},
		{"spaced field list", "select a ,b from interfaces", "expected from"},
		{"no source", "select * from", "missing data source"},
		{"keyword as source", "select * from where", "missing data source"},
		{"trailing junk", "select * from arp limit 10", "unexpected"},
		{"empty where", "select * from arp where", "empty condition"},
		{"condition without equal", "select * from arp where Vlan 10", "has no '='"},
		{"double equal", "select * from arp where Vlan = 10 = 20", "more than one"},
		{"no field", "select * from arp where = 10", "no field name"},
		{"no value", "select * from arp where Vlan = or", "has no value"},
		{"dangling and", "select * from arp where Vlan = 10 and", "empty condition"},
		{"empty field in list", "select a,,b from arp", "empty field name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			require.ErrorIs(t, err, domain.ErrMalformedQuery)
			require.Contains(t, err.Error(), tt.msg)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
		})
	}
}

func TestParseWithMode_Lenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Query
	}{
		{
			name:  "keeps conditions before the bad one",
			input: "select * from arp where Vlan = 10 and Address 10.0.0.1 and Age = 5",
			want: domain.Query{
				Fields:     []string{"*"},
				Source:     "arp",
				Conditions: []domain.Condition{{Field: "Vlan", Values: []string{"10"}}},
			},
		},
		{
			name:  "ignores trailing words",
			input: "select * from arp limit 10",
			want:  domain.Query{Fields: []string{"*"}, Source: "arp"},
		},
		{
			name:  "empty where",
			input: "select Port from ports where",
			want:  domain.Query{Fields: []string{"Port"}, Source: "ports"},
		},
		{
			name:  "drops empty field names",
			input: "select a,,b, from ports",
			want:  domain.Query{Fields: []string{"a", "b"}, Source: "ports"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWithMode(tt.input, ModeLenient)
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "got %+v", got)
		})
	}
}

func TestParseWithMode_LenientStillRequiresHead(t *testing.T) {
	for _, input := range []string{"", "select *", "select * from", "update x"} {
		_, err := ParseWithMode(input, ModeLenient)
		require.ErrorIs(t, err, domain.ErrMalformedQuery, input)
	}
}

func isKeyword(s string) bool {
	return Token{Type: TokenWord, Value: s}.IsKeyword()
}

func TestParse_RoundTrip_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	word := gen.Identifier().SuchThat(func(s string) bool {
		return s != "" && !isKeyword(s)
	})
	words := gen.SliceOf(word).SuchThat(func(ws []string) bool { return len(ws) > 0 })

	properties.Property("parse(String(q)) == q", prop.ForAll(
		func(fields []string, source string, condFields []string, values []string, wildcard bool) bool {
			q := domain.Query{Fields: fields, Source: source}
			if wildcard {
				q.Fields = []string{domain.Wildcard}
			}
			for i, f := range condFields {
				c := domain.Condition{Field: f, Values: []string{values[i%len(values)]}}
				if i%2 == 1 {
					two := values[(i+1)%len(values)] + " " + values[i%len(values)]
					c.Values = append(c.Values, two)
				}
				q.Conditions = append(q.Conditions, c)
			}

			parsed, err := Parse(q.String())
			if err != nil {
				t.Logf("parse %q: %v", q.String(), err)
				return false
			}
			return parsed.Equal(q) && parsed.String() == q.String()
		},
		words,
		word,
		gen.SliceOf(word),
		words,
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestParse_RoundTrip_QuotedValues(t *testing.T) {
	q := domain.Query{
		Fields: []string{"Interface"},
		Source: "interfaces",
		Conditions: []domain.Condition{
			{Field: "Name", Values: []string{"Rock and Roll", "a=b", `say "hi"`}},
			{Field: "Status", Values: []string{"up or down"}},
		},
	}
	parsed, err := Parse(q.String())
	require.NoError(t, err)
	require.True(t, q.Equal(parsed), "got %+v from %q", parsed, q.String())
}

func TestParse_StrictAcceptsWhatLenientAccepts(t *testing.T) {
	// Strict either fails or agrees with lenient.
	inputs := []string{
		"select * from arp where Vlan = 10",
		"select * from arp where Vlan = 10 and bad",
		"select a,b from ports where Name = x or y",
		"select a from ports junk",
	}
	for _, in := range inputs {
		strict, err := Parse(in)
		lenient, lerr := ParseWithMode(in, ModeLenient)
		require.NoError(t, lerr, in)
		if err == nil {
			require.True(t, strict.Equal(lenient), in)
		} else {
			require.True(t, strings.Contains(err.Error(), "position"), in)
		}
	}
}
