// internal/core/domain/host_test.go
package domain

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"netsql/internal/testutil"
)

func TestParseHost(t *testing.T) {
	h, err := ParseHost(" 10.74.41.73 ", 2)
	testutil.AssertNoError(t, err, "valid address")
	testutil.AssertEqual(t, h.Address, "10.74.41.73", "trimmed")
	testutil.AssertEqual(t, h.Index, 2, "index")

	_, err = ParseHost("core-sw-1", 0)
	testutil.AssertError(t, err, "hostname rejected")
}

func TestReadHosts(t *testing.T) {
	hosts, err := ReadHosts(strings.NewReader(testutil.FixtureHostList))
	testutil.AssertNoError(t, err, "read")
	testutil.AssertEqual(t, len(hosts), 3, "valid lines only")

	for i, want := range testutil.FixtureHosts {
		testutil.AssertEqual(t, hosts[i].Address, want, "address")
		testutil.AssertEqual(t, hosts[i].Index, i, "dense index")
	}
}

func TestResolveHosts(t *testing.T) {
	dir := t.TempDir()

	t.Run("single address", func(t *testing.T) {
		hosts, err := ResolveHosts("192.168.10.1")
		testutil.AssertNoError(t, err, "resolve")
		testutil.AssertEqual(t, len(hosts), 1, "one host")
	})

	t.Run("host file", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "hosts.txt", testutil.FixtureHostList)
		hosts, err := ResolveHosts(path)
		testutil.AssertNoError(t, err, "resolve")
		testutil.AssertEqual(t, len(hosts), 3, "three hosts")
	})

	t.Run("file without addresses", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "empty.txt", "# nothing\n\n")
		_, err := ResolveHosts(path)
		testutil.AssertTrue(t, errors.Is(err, ErrNoHosts), "no hosts")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ResolveHosts(filepath.Join(dir, "absent.txt"))
		testutil.AssertError(t, err, "unreadable source")
	})
}
