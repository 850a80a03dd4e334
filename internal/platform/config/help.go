// internal/platform/config/help.go
package config

// Examples se muestra en la ayuda del comando query.
const Examples = `  Interfaces of one switch:
    netsql -u admin -s 10.74.41.73 -q "select * from interfaces"

  Connected ports on every switch of a list, HTML report:
    netsql -u admin -s switches.txt --html-output \
      -q "select Interface,Name,Vlan from interfaces where Status = connected"

  Two VLANs, replaying earlier captures:
    netsql --no-connect -s switches.txt \
      -q "select Interface,Vlan from ports where Vlan = 10 or 20 and Status = connected"

  Environment overrides use the NETSQL_ prefix:
    NETSQL_WORKERS=8 NETSQL_LOG_LEVEL=debug netsql -u admin -s switches.txt -q "select * from arp"
`
