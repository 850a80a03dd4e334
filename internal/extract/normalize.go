// internal/extract/normalize.go
package extract

import "regexp"

// Long interface names and their short forms. Longer names come first so
// TenGigabitEthernet is never read as GigabitEthernet.
var interfaceAbbreviations = []struct {
	re    *regexp.Regexp
	short string
}{
	{regexp.MustCompile(`\bTenGigabitEthernet(\d+(?:/\d+)*)`), "Te"},
	{regexp.MustCompile(`\bGigabitEthernet(\d+(?:/\d+)*)`), "Gi"},
	{regexp.MustCompile(`\bFastEthernet(\d+(?:/\d+)*)`), "Fa"},
}

// Normalize shortens interface names so tables from different commands use
// the same spelling: "GigabitEthernet1/0/3" becomes "Gi1/0/3". Applying it
// twice gives the same result as applying it once.
func Normalize(s string) string {
	for _, a := range interfaceAbbreviations {
		s = a.re.ReplaceAllString(s, a.short+"${1}")
	}
	return s
}
