package analysis

import (
	"os"

	"gopkg.in/yaml.v2"
)

// ModelConfig selects the generation model and its sampling parameters. It
// is loaded from a yaml file at composition time so operators can switch
// models without a rebuild.
type ModelConfig struct {
	Model           string  `yaml:"model"`
	Temperature     float32 `yaml:"temperature"`
	MaxOutputTokens int32   `yaml:"max_output_tokens"`
}

// DefaultModelConfig is used when no config file is present.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Model:           "gemini-2.0-flash",
		Temperature:     0.7,
		MaxOutputTokens: 4000,
	}
}

// LoadModelConfig reads the yaml model config, falling back to defaults for
// a missing file or any unset field.
func LoadModelConfig(path string) (ModelConfig, error) {
	cfg := DefaultModelConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	var loaded ModelConfig
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return cfg, err
	}
	if loaded.Model != "" {
		cfg.Model = loaded.Model
	}
	if loaded.Temperature != 0 {
		cfg.Temperature = loaded.Temperature
	}
	if loaded.MaxOutputTokens != 0 {
		cfg.MaxOutputTokens = loaded.MaxOutputTokens
	}
	return cfg, nil
}
