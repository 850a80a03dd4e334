// internal/core/domain/host.go
package domain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"netsql/internal/platform/validator"
)

// Host is one network device to query. Index is its position in the input
// list and fixes its place in the aggregate report.
type Host struct {
	Address string
	Index   int
}

func (h Host) String() string {
	return h.Address
}

// ParseHost validates s as an IP address and returns its canonical form.
func ParseHost(s string, index int) (Host, error) {
	addr := validator.NormalizeIP(s)
	if addr == "" {
		return Host{}, fmt.Errorf("invalid host address %q", strings.TrimSpace(s))
	}
	return Host{Address: addr, Index: index}, nil
}

// ResolveHosts interprets source either as a single address or as the path of
// a newline-delimited address list.
func ResolveHosts(source string) ([]Host, error) {
	if h, err := ParseHost(source, 0); err == nil {
		return []Host{h}, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("source %q is neither an address nor a readable file: %w", source, err)
	}
	defer f.Close()

	hosts, err := ReadHosts(f)
	if err != nil {
		return nil, fmt.Errorf("read host list %s: %w", source, err)
	}
	if len(hosts) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoHosts, source)
	}
	return hosts, nil
}

// ReadHosts parses one address per line. Blank lines and lines that are not
// addresses are skipped.
func ReadHosts(r io.Reader) ([]Host, error) {
	var hosts []Host
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h, err := ParseHost(line, len(hosts))
		if err != nil {
			continue
		}
		hosts = append(hosts, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return hosts, nil
}
