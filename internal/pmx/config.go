package pmx

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// ConfigFile is the name of the config file looked for in the working directory.
const ConfigFile = "pmx.toml"

// Config is the optional pmx.toml configuration, command line flags take
// precedence over anything set here.
type Config struct {
	// HostVariable is the JMeter variable prefixed to sampler paths
	HostVariable string `toml:"host_variable"`

	// Output is the default output file or directory
	Output string `toml:"output"`

	// Strict makes unsupported features an error
	Strict bool `toml:"strict"`
}

// LoadConfig reads the config file at path.
//
// A missing file is not an error, the zero [Config] is returned. Unknown keys are, so
// that typos don't go unnoticed.
func LoadConfig(path string) (Config, error) {
	var config Config

	if path == "" {
		return config, nil
	}

	meta, err := toml.DecodeFile(path, &config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}

		return Config{}, fmt.Errorf("could not read config file %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return Config{}, fmt.Errorf("unknown keys in config file %s: %v", path, undecoded)
	}

	return config, nil
}
