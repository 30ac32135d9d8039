package sysproxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRouteInterface(t *testing.T) {
	out := `   route to: default
destination: default
        mask: default
     gateway: 192.168.1.1
   interface: en0
       flags: <UP,GATEWAY,DONE,STATIC,PRCLONING,GLOBAL>
`
	assert.Equal(t, "en0", parseRouteInterface(out))
	assert.Equal(t, "", parseRouteInterface("route: no such route\n"))
}

func TestParseHardwarePortName(t *testing.T) {
	out := `Hardware Port: Ethernet Adapter (en3)
Device: en3
Ethernet Address: 00:11:22:33:44:55

Hardware Port: Wi-Fi
Device: en0
Ethernet Address: aa:bb:cc:dd:ee:ff

Hardware Port: Thunderbolt Bridge
Device: bridge0
Ethernet Address: ff:ee:dd:cc:bb:aa
`
	assert.Equal(t, "Wi-Fi", parseHardwarePortName(out, "en0"))
	assert.Equal(t, "Ethernet Adapter (en3)", parseHardwarePortName(out, "en3"))
	assert.Equal(t, "Thunderbolt Bridge", parseHardwarePortName(out, "bridge0"))
	assert.Equal(t, "", parseHardwarePortName(out, "en9"))
}

func TestParseProxyState(t *testing.T) {
	out := `Enabled: Yes
Server: 127.0.0.1
Port: 8080
Authenticated Proxy Enabled: 0
`
	s := parseProxyState(out)
	assert.True(t, s.Enabled)
	assert.Equal(t, "127.0.0.1", s.Host)
	assert.Equal(t, 8080, s.Port)
}

func TestParseProxyState_Disabled(t *testing.T) {
	s := parseProxyState("Enabled: No\nServer: \nPort: 0\n")
	assert.False(t, s.Enabled)
	assert.Equal(t, "", s.Host)
	assert.Equal(t, 0, s.Port)
}

func TestParseGSettingsValue(t *testing.T) {
	assert.Equal(t, "manual", parseGSettingsValue("'manual'\n"))
	assert.Equal(t, "127.0.0.1", parseGSettingsValue("'127.0.0.1'\n"))
	assert.Equal(t, "8080", parseGSettingsValue("8080\n"))
}
