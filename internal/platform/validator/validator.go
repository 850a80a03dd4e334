// internal/platform/validator/validator.go
package validator

import (
	"net/netip"
	"strings"
)

// NormalizeIP devuelve la forma canónica de una IP (v4 o v6) o "" si no es
// válida. Zones are rejected since a device address is also a directory name;
// IPv4-mapped v6 addresses come back as plain v4.
func NormalizeIP(ip string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil || addr.Zone() != "" {
		return ""
	}
	return addr.Unmap().String()
}
