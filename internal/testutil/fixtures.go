// internal/testutil/fixtures.go
package testutil

import (
	"path/filepath"
	"testing"
)

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixtureHosts contiene direcciones de dispositivos válidas.
var FixtureHosts = []string{
	"10.74.41.73",
	"10.74.41.74",
	"192.168.10.1",
}

// FixtureHostList is a host list file with comments and junk lines mixed in.
const FixtureHostList = `# cleveland st switches
10.74.41.73

not-an-address
10.74.41.74
  192.168.10.1
10.0.0.300
`

// ShowInterfacesStatus is raw "show interfaces status" output.
const ShowInterfacesStatus = `
Port      Name               Status       Vlan       Duplex  Speed Type
Gi1/0/1   Reception PC       connected    10         a-full a-1000 10/100/1000BaseTX
Gi1/0/2                      notconnect   10           auto   auto 10/100/1000BaseTX
Gi1/0/3   Polycom room 2     connected    20         a-full  a-100 10/100/1000BaseTX
Gi1/0/10  Spare              notconnect   1            auto   auto 10/100/1000BaseTX
`

// ShowInterfaces is raw "show interfaces" output trimmed to the lines the
// template reads.
const ShowInterfaces = `GigabitEthernet1/0/1 is up, line protocol is up (connected)
  Hardware is Gigabit Ethernet, address is 0011.2233.4401 (bia 0011.2233.4401)
  Last input 00:00:01, output 00:00:00, output hang never
GigabitEthernet1/0/2 is down, line protocol is down (notconnect)
  Hardware is Gigabit Ethernet, address is 0011.2233.4402 (bia 0011.2233.4402)
  Last input never, output never, output hang never
GigabitEthernet1/0/3 is up, line protocol is up (connected)
  Hardware is Gigabit Ethernet, address is 0011.2233.4403 (bia 0011.2233.4403)
  Last input 00:00:12, output 00:00:03, output hang never
GigabitEthernet1/0/10 is down, line protocol is down (notconnect)
  Hardware is Gigabit Ethernet, address is 0011.2233.440a (bia 0011.2233.440a)
  Last input never, output never, output hang never
`

// ShowInterfacesStatusTemplate extracts "show interfaces status".
const ShowInterfacesStatusTemplate = `Value PORT (\S+)
Value NAME (.*?)
Value STATUS (connected|notconnect|disabled|err-disabled|inactive)
Value VLAN (\S+)
Value DUPLEX (\S+)
Value SPEED (\S+)
Value TYPE (.*?)

Start
  ^${PORT}\s+${NAME}\s+${STATUS}\s+${VLAN}\s+${DUPLEX}\s+${SPEED}\s*${TYPE}\s*$$ -> Record
`

// ShowInterfacesTemplate extracts "show interfaces".
const ShowInterfacesTemplate = `Value Required INTERFACE (\S+)
Value LINK_STATUS (.+?)
Value PROTOCOL_STATUS (\S+)
Value LAST_INPUT (\S+)
Value LAST_OUTPUT (\S+)

Start
  ^\S+\s+is\s+.+?,\s+line\s+protocol -> Continue.Record
  ^${INTERFACE}\s+is\s+${LINK_STATUS},\s+line\s+protocol\s+is\s+${PROTOCOL_STATUS}
  ^\s+Last\s+input\s+${LAST_INPUT},\s+output\s+${LAST_OUTPUT},
`

// CommandDefinitionsJSON is a command catalog for the fixtures above.
const CommandDefinitionsJSON = `[
  {
    "command": "show interfaces status",
    "headers": ["Interface", "Name", "Status", "Vlan", "Duplex", "Speed", "Type"],
    "template": "show_interfaces_status.textfsm"
  },
  {
    "command": "show interfaces",
    "headers": ["Interface", "Link_Status", "Protocol_Status", "Last_Input", "Last_Output"],
    "template": "show_interfaces.textfsm"
  },
  {
    "command": "show version",
    "headers": ["Version"],
    "template": ""
  }
]`

// SourceDefinitionsJSON is a source catalog for the fixtures above.
const SourceDefinitionsJSON = `[
  {
    "data_source_name": "interfaces",
    "commands": ["show interfaces status", "show interfaces"],
    "process_dataframes": true,
    "join_dataframes": true,
    "common_column": "Interface",
    "report_file_name": "interfaces"
  },
  {
    "data_source_name": "ports",
    "commands": ["show interfaces status"],
    "process_dataframes": true,
    "join_dataframes": false,
    "common_column": "",
    "report_file_name": "ports"
  },
  {
    "data_source_name": "raw-version",
    "commands": ["show version"],
    "process_dataframes": false,
    "join_dataframes": false,
    "common_column": "",
    "report_file_name": "version"
  }
]`

// CatalogFiles writes the fixture catalog and templates into dir and returns
// the commands and sources file paths.
func CatalogFiles(t *testing.T, dir string) (commandsPath, sourcesPath string) {
	t.Helper()
	WriteFile(t, dir, "show_interfaces_status.textfsm", ShowInterfacesStatusTemplate)
	WriteFile(t, dir, "show_interfaces.textfsm", ShowInterfacesTemplate)
	commandsPath = WriteFile(t, dir, "command_definitions.json", CommandDefinitionsJSON)
	sourcesPath = WriteFile(t, dir, "data_source_definitions.json", SourceDefinitionsJSON)
	return commandsPath, sourcesPath
}

// RawOutputs maps each fixture command to its raw device output.
var RawOutputs = map[string]string{
	"show interfaces status": ShowInterfacesStatus,
	"show interfaces":        ShowInterfaces,
	"show version":           "Cisco IOS Software, C2960X Software, Version 15.2(7)E3",
}

// TemplateDir returns the directory fixture templates were written to.
func TemplateDir(commandsPath string) string {
	return filepath.Dir(commandsPath)
}
