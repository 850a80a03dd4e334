// internal/textfsm/template.go
package textfsm

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirikothe/gotextfsm"

	"netsql/internal/platform/errors"
)

// ListSeparator joins the items of a List value into one field.
const ListSeparator = ","

// Template es una plantilla TextFSM compilada junto con el orden de sus Values.
// The compiled FSM is never parsed against directly; ParseText works on a
// private copy of its value state, so one Template serves concurrent callers.
type Template struct {
	fsm    gotextfsm.TextFSM
	header []string
}

// ParseTemplate compila una plantilla TextFSM.
func ParseTemplate(r io.Reader) (*Template, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read template")
	}
	text := string(b)

	t := &Template{}
	if err := t.fsm.ParseString(text); err != nil {
		return nil, err
	}
	header, err := valueOrder(text)
	if err != nil {
		return nil, err
	}
	t.header = header
	return t, nil
}

// valueOrder devuelve los nombres de los Values en orden de declaración.
// gotextfsm guarda los Values en un map, así que el orden se relee del texto.
func valueOrder(text string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	sc := bufio.NewScanner(strings.NewReader(text))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			break
		}
		if !strings.HasPrefix(line, "Value ") {
			continue
		}
		var v gotextfsm.TextFSMValue
		if err := v.Parse(line, n); err != nil {
			return nil, err
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("%d Line: duplicate value %s", n, v.Name)
		}
		seen[v.Name] = true
		names = append(names, v.Name)
	}
	return names, sc.Err()
}

// Header returns the value names in declaration order.
func (t *Template) Header() []string {
	out := make([]string, len(t.header))
	copy(out, t.header)
	return out
}

// Options returns the options declared for value name, sorted.
func (t *Template) Options(name string) []string {
	v, ok := t.fsm.Values[name]
	if !ok {
		return nil
	}
	out := append([]string(nil), v.Options...)
	sort.Strings(out)
	return out
}

// ParseText runs text through the template and returns one row per record,
// fields in Header order.
func (t *Template) ParseText(text string) ([][]string, error) {
	fsm := t.fsm
	fsm.Values = make(map[string]gotextfsm.TextFSMValue, len(t.fsm.Values))
	for name, v := range t.fsm.Values {
		fsm.Values[name] = v
	}

	var out gotextfsm.ParserOutput
	out.Reset(fsm)
	if err := out.ParseTextString(text, fsm, true); err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(out.Dict))
	for _, rec := range out.Dict {
		row := make([]string, len(t.header))
		for i, name := range t.header {
			row[i] = field(rec[name])
		}
		records = append(records, row)
	}
	return records, nil
}

// field aplana el valor de un registro a una celda.
func field(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ListSeparator)
	case map[string]string:
		return joinGroups(x)
	case []map[string]string:
		parts := make([]string, len(x))
		for i, m := range x {
			parts[i] = joinGroups(m)
		}
		return strings.Join(parts, ListSeparator)
	default:
		return fmt.Sprint(x)
	}
}

func joinGroups(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + m[k]
	}
	return strings.Join(parts, " ")
}
