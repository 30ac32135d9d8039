//go:build darwin

package sysproxy

import (
	"fmt"
	"strconv"

	"github.com/sashaweiss-signal/proxying/internal/util"
)

func backendName() (string, bool) { return "networksetup", true }

// defaultNetworkService finds the service name networksetup expects for the
// interface carrying the default route.
func defaultNetworkService() (string, error) {
	out, err := util.ReadCommand("route", "-n", "get", "default")
	if err != nil {
		return "", fmt.Errorf("route -n get default: %w", err)
	}
	device := parseRouteInterface(string(out))
	if device == "" {
		return "", fmt.Errorf("no default route interface")
	}

	ports, err := util.ReadCommand("networksetup", "-listallhardwareports")
	if err != nil {
		return "", fmt.Errorf("networksetup -listallhardwareports: %w", err)
	}
	service := parseHardwarePortName(string(ports), device)
	if service == "" {
		return "", fmt.Errorf("%s not found in networksetup -listallhardwareports", device)
	}
	return service, nil
}

func currentImpl() (Settings, error) {
	service, err := defaultNetworkService()
	if err != nil {
		return Settings{}, err
	}
	out, err := util.ReadCommand("networksetup", "-getwebproxy", service)
	if err != nil {
		return Settings{}, fmt.Errorf("networksetup -getwebproxy: %w", err)
	}
	return parseProxyState(string(out)), nil
}

func setImpl(host string, port int) error {
	service, err := defaultNetworkService()
	if err != nil {
		return err
	}
	p := strconv.Itoa(port)
	if err := util.RunCommand("networksetup", "-setwebproxy", service, host, p); err != nil {
		return err
	}
	return util.RunCommand("networksetup", "-setsecurewebproxy", service, host, p)
}

func disableImpl() error {
	service, err := defaultNetworkService()
	if err != nil {
		return err
	}
	if err := util.RunCommand("networksetup", "-setwebproxystate", service, "off"); err != nil {
		return err
	}
	return util.RunCommand("networksetup", "-setsecurewebproxystate", service, "off")
}
