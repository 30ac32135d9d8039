//go:build linux

package sysproxy

import (
	"os/exec"
	"strconv"

	"github.com/sashaweiss-signal/proxying/internal/util"
)

var hasGSettings bool

func init() {
	_, err := exec.LookPath("gsettings")
	hasGSettings = err == nil
}

func backendName() (string, bool) { return "gsettings", hasGSettings }

func currentImpl() (Settings, error) {
	if !hasGSettings {
		return Settings{}, ErrUnsupported
	}

	mode, err := util.ReadCommand("gsettings", "get", "org.gnome.system.proxy", "mode")
	if err != nil {
		return Settings{}, err
	}
	host, err := util.ReadCommand("gsettings", "get", "org.gnome.system.proxy.http", "host")
	if err != nil {
		return Settings{}, err
	}
	port, err := util.ReadCommand("gsettings", "get", "org.gnome.system.proxy.http", "port")
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		Enabled: parseGSettingsValue(string(mode)) == "manual",
		Host:    parseGSettingsValue(string(host)),
	}
	if n, err := strconv.Atoi(parseGSettingsValue(string(port))); err == nil {
		s.Port = n
	}
	return s, nil
}

func setImpl(host string, port int) error {
	if !hasGSettings {
		return ErrUnsupported
	}

	p := strconv.Itoa(port)
	for _, proxyType := range []string{"http", "https"} {
		if err := util.RunCommand("gsettings", "set", "org.gnome.system.proxy."+proxyType, "host", host); err != nil {
			return err
		}
		if err := util.RunCommand("gsettings", "set", "org.gnome.system.proxy."+proxyType, "port", p); err != nil {
			return err
		}
	}
	return util.RunCommand("gsettings", "set", "org.gnome.system.proxy", "mode", "manual")
}

func disableImpl() error {
	if !hasGSettings {
		return ErrUnsupported
	}
	return util.RunCommand("gsettings", "set", "org.gnome.system.proxy", "mode", "none")
}
