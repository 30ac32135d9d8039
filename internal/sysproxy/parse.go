package sysproxy

import (
	"strconv"
	"strings"
)

// parseRouteInterface extracts the interface name from `route -n get default`
// output ("interface: en0").
func parseRouteInterface(out string) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "interface:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// parseHardwarePortName maps a BSD device name (en0) to the service name
// networksetup expects (Wi-Fi), from `networksetup -listallhardwareports`
// output.
func parseHardwarePortName(out, device string) string {
	for _, span := range strings.Split(out, "Ethernet Address") {
		if !strings.Contains(span, "Device: "+device) {
			continue
		}
		const marker = "Hardware Port: "
		idx := strings.Index(span, marker)
		if idx < 0 {
			continue
		}
		span = span[idx+len(marker):]
		if end := strings.Index(span, "\n"); end >= 0 {
			span = span[:end]
		}
		return strings.TrimSpace(span)
	}
	return ""
}

// parseProxyState reads `networksetup -getwebproxy <service>` output:
//
//	Enabled: Yes
//	Server: 127.0.0.1
//	Port: 8080
func parseProxyState(out string) Settings {
	var s Settings
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Enabled:"):
			s.Enabled = strings.Contains(line, "Yes")
		case strings.HasPrefix(line, "Server:"):
			s.Host = strings.TrimSpace(strings.TrimPrefix(line, "Server:"))
		case strings.HasPrefix(line, "Port:"):
			v := strings.TrimSpace(strings.TrimPrefix(line, "Port:"))
			if n, err := strconv.Atoi(v); err == nil {
				s.Port = n
			}
		}
	}
	return s
}

// parseGSettingsValue strips the quoting gsettings wraps string values in
// ("'manual'" becomes "manual").
func parseGSettingsValue(out string) string {
	return strings.Trim(strings.TrimSpace(out), "'")
}
