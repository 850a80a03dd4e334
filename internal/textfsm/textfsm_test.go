// internal/textfsm/textfsm_test.go
package textfsm

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"netsql/internal/testutil"
)

func mustTemplate(t *testing.T, text string) *Template {
	t.Helper()
	tpl, err := ParseTemplate(strings.NewReader(text))
	require.NoError(t, err)
	return tpl
}

func TestParseText_InterfacesStatus(t *testing.T) {
	tpl := mustTemplate(t, testutil.ShowInterfacesStatusTemplate)
	require.Equal(t, []string{"PORT", "NAME", "STATUS", "VLAN", "DUPLEX", "SPEED", "TYPE"}, tpl.Header())

	records, err := tpl.ParseText(testutil.ShowInterfacesStatus)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Gi1/0/1", "Reception PC", "connected", "10", "a-full", "a-1000", "10/100/1000BaseTX"},
		{"Gi1/0/2", "", "notconnect", "10", "auto", "auto", "10/100/1000BaseTX"},
		{"Gi1/0/3", "Polycom room 2", "connected", "20", "a-full", "a-100", "10/100/1000BaseTX"},
		{"Gi1/0/10", "Spare", "notconnect", "1", "auto", "auto", "10/100/1000BaseTX"},
	}, records)
}

func TestParseText_ContinueRecordAndEOF(t *testing.T) {
	tpl := mustTemplate(t, testutil.ShowInterfacesTemplate)

	records, err := tpl.ParseText(testutil.ShowInterfaces)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"GigabitEthernet1/0/1", "up", "up", "00:00:01", "00:00:00"},
		{"GigabitEthernet1/0/2", "down", "down", "never", "never"},
		{"GigabitEthernet1/0/3", "up", "up", "00:00:12", "00:00:03"},
		{"GigabitEthernet1/0/10", "down", "down", "never", "never"},
	}, records)
}

func TestParseText_FilldownAndRequired(t *testing.T) {
	tpl := mustTemplate(t, `Value Filldown VLAN (\d+)
Value Required MAC (\S+)
Value PORT (\S+)

Start
  ^Vlan\s+${VLAN}
  ^\s+-+ -> Record
  ^\s+${MAC}\s+${PORT} -> Record
`)

	text := `Vlan 10
  0011.2233.4455 Gi1/0/1
  0011.2233.4466 Gi1/0/2
  ------
Vlan 20
  0011.2233.4477 Gi1/0/3
`
	records, err := tpl.ParseText(text)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"10", "0011.2233.4455", "Gi1/0/1"},
		{"10", "0011.2233.4466", "Gi1/0/2"},
		{"20", "0011.2233.4477", "Gi1/0/3"},
	}, records, "the dashed line records nothing since MAC is required")
}

func TestParseText_ListAndStates(t *testing.T) {
	tpl := mustTemplate(t, `Value Required NEIGHBOR (\S+)
Value List ADDRESS (\d+\.\d+\.\d+\.\d+)

Start
  ^Device ID: ${NEIGHBOR} -> Addresses

Addresses
  ^\s+IP address: ${ADDRESS}
  ^----- -> Record Start
`)

	text := `Device ID: core-1
  IP address: 10.0.0.1
  IP address: 10.0.1.1
-----
Device ID: edge-2
  IP address: 10.0.0.2
-----
`
	records, err := tpl.ParseText(text)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"core-1", "10.0.0.1" + ListSeparator + "10.0.1.1"},
		{"edge-2", "10.0.0.2"},
	}, records)
}

func TestParseText_Fillup(t *testing.T) {
	tpl := mustTemplate(t, `Value PORT (\S+)
Value Fillup CHASSIS (\S+)

Start
  ^port ${PORT} -> Record
  ^chassis ${CHASSIS}
`)

	records, err := tpl.ParseText("port a\nport b\nchassis C1\n")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a", "C1"}, {"b", "C1"}, {"", "C1"}}, records)
}

func TestParseText_ExplicitEOFSuppressesImplicitRecord(t *testing.T) {
	tpl := mustTemplate(t, "Value NAME (\\S+)\n\nStart\n  ^name ${NAME}\n\nEOF\n")
	records, err := tpl.ParseText("name x\n")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestParseText_EndStopsProcessing(t *testing.T) {
	tpl := mustTemplate(t, `Value NAME (\S+)

Start
  ^name ${NAME} -> Record
  ^stop -> End
`)
	records, err := tpl.ParseText("name a\nstop\nname b\n")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a"}}, records)
}

func TestParseText_ClearAndClearall(t *testing.T) {
	tpl := mustTemplate(t, `Value Filldown SITE (\S+)
Value HOST (\S+)

Start
  ^site ${SITE}
  ^host ${HOST}
  ^drop -> Clear
  ^reset -> Clearall
  ^emit -> Record
`)
	records, err := tpl.ParseText("site s1\nhost h1\ndrop\nemit\nhost h2\nreset\nhost h3\nemit\n")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"s1", ""}, {"", "h3"}}, records)
}

func TestParseText_ErrorAction(t *testing.T) {
	tpl := mustTemplate(t, `Value NAME (\S+)

Start
  ^name ${NAME} -> Record
  ^% Invalid -> Error "device rejected the command"
`)
	_, err := tpl.ParseText("name a\n% Invalid input detected\n")
	require.Error(t, err)
	require.Contains(t, err.Error(), "device rejected the command")
}

func TestParseText_UnmatchedOptionalGroupResetsValue(t *testing.T) {
	tpl := mustTemplate(t, `Value NAME (\S+)
Value DESC (\S+)

Start
  ^port ${NAME}(\s+desc\s+${DESC})?
  ^end -> Record
`)
	records, err := tpl.ParseText("port a desc uplink\nport b\nend\n")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"b", ""}}, records, "DESC from the first port must not leak into the second")
}

func TestParseText_ReusableTemplate(t *testing.T) {
	tpl := mustTemplate(t, `Value Filldown SITE (\S+)
Value HOST (\S+)

Start
  ^site ${SITE}
  ^host ${HOST} -> Record

EOF
`)
	first, err := tpl.ParseText("site s1\nhost h1\n")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"s1", "h1"}}, first)

	second, err := tpl.ParseText("host h2\n")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"", "h2"}}, second, "filldown state must not carry over between runs")
}

func TestParseTemplate_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"no values", "Start\n  ^x -> Record\n", "No Value definitions"},
		{"no start", "Value A (\\S+)\n\nOther\n  ^${A}\n", "Missing state 'Start'"},
		{"bad option", "Value Sometimes A (\\S+)\n\nStart\n  ^${A}\n", "Invalid option"},
		{"unparenthesised regex", "Value A (\\S+\n\nStart\n  ^${A}\n", "must be contained within"},
		{"rule without caret", "Value A (\\S+)\n\nStart\n  ${A} -> Record\n", "carat"},
		{"undefined state", "Value A (\\S+)\n\nStart\n  ^${A} -> Nowhere\n", "State 'Nowhere' not found"},
		{"continue with state", "Value A (\\S+)\n\nStart\n  ^${A} -> Continue Other\n\nOther\n  ^x\n", "with new state"},
		{"bad action", "Value A (\\S+)\n\nStart\n  ^${A} -> Next.Sometimes\n", "Badly formatted rule"},
		{"duplicate value", "Value A (\\S+)\nValue A (\\d+)\n\nStart\n  ^${A}\n", "duplicate value"},
		{"bad regex", "Value A ([)\n\nStart\n  ^${A}\n", "Invalid regular expression"},
		{"rules in End", "Value A (\\S+)\n\nStart\n  ^${A}\n\nEnd\n  ^x\n", "Non-Empty 'End' state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate(strings.NewReader(tt.text))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseTemplate_CommentsAndOptions(t *testing.T) {
	tpl := mustTemplate(t, `# leading comment
Value Required,Filldown NAME (\S+)
Value Key ID (\d+)

Start
  # rule comment
  ^${NAME}\s+${ID} -> Next.Record
`)
	require.Equal(t, []string{"NAME", "ID"}, tpl.Header())
	require.Equal(t, []string{"Filldown", "Required"}, tpl.Options("NAME"))
	require.Equal(t, []string{"Key"}, tpl.Options("ID"))
	require.Nil(t, tpl.Options("MISSING"))
}

func TestCache_CompilesOnce(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "status.textfsm", testutil.ShowInterfacesStatusTemplate)

	c := NewCache()
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			header, records, err := c.Extract(path, testutil.ShowInterfacesStatus)
			if err == nil && (len(header) != 7 || len(records) != 4) {
				err = errors.New("unexpected shape")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, 1, c.Len())
}

func TestCache_MissingTemplate(t *testing.T) {
	_, _, err := NewCache().Extract("/nonexistent/x.textfsm", "text")
	require.Error(t, err)
}
