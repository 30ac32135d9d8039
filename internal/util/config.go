package util

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ProjectConfigFilename = ".start-proxy.yaml"

// ProjectConfig holds per-checkout defaults, read from .start-proxy.yaml at
// the checkout root. Flags override everything in here.
type ProjectConfig struct {
	// Certificate is the pinned certificate's path relative to the checkout
	// root, when it differs from the standard location.
	Certificate string `yaml:"certificate"`
	Listen      Listen `yaml:"listen"`
	// Scripts are addon paths loaded on every session, relative to the
	// checkout root unless absolute.
	Scripts []string `yaml:"scripts"`
	// MitmproxyArgs are appended verbatim to the mitmproxy command line.
	MitmproxyArgs []string `yaml:"mitmproxy_args"`
}

type Listen struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoadProjectConfig reads .start-proxy.yaml from root. A missing file is not
// an error; it yields an empty config.
func LoadProjectConfig(root string) (*ProjectConfig, error) {
	path := filepath.Join(root, ProjectConfigFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ProjectConfig{}, nil
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
