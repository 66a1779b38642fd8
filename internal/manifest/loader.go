package manifest

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultFileName is the manifest looked for when --config is not given.
const DefaultFileName = "berth.yaml"

// Load reads and unmarshals a stack manifest from the given path.
func Load(path string) (*Stack, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("manifest %s not found, run 'berth init' to create one", path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading manifest %s: %w", path, err)
	}

	var stack Stack
	if err := v.Unmarshal(&stack); err != nil {
		return nil, fmt.Errorf("unable to decode manifest %s: %w", path, err)
	}

	return &stack, nil
}
