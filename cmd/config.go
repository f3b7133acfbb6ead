package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the pipeline. Precedence:
// flags > env (QOL_*) > config file > defaults.
type Config struct {
	DatasetPath string `mapstructure:"dataset_path" yaml:"dataset_path"`
	ArtifactDir string `mapstructure:"artifact_dir" yaml:"artifact_dir"`
	ReportDir   string `mapstructure:"report_dir" yaml:"report_dir"`
	ListenAddr  string `mapstructure:"listen_addr" yaml:"listen_addr"`

	Seed    int64 `mapstructure:"seed" yaml:"seed"`
	Samples int   `mapstructure:"samples" yaml:"samples"`

	TestRatio       float64 `mapstructure:"test_ratio" yaml:"test_ratio"`
	Epochs          int     `mapstructure:"epochs" yaml:"epochs"`
	LearningRate    float64 `mapstructure:"learning_rate" yaml:"learning_rate"`
	BatchSize       int     `mapstructure:"batch_size" yaml:"batch_size"`
	MaxDepth        int     `mapstructure:"max_depth" yaml:"max_depth"`
	MinSamplesSplit int     `mapstructure:"min_samples_split" yaml:"min_samples_split"`
}

// LoadConfig loads configuration from file, env, and defaults.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QOL")
	v.AutomaticEnv()

	v.SetDefault("dataset_path", "data/tanzania_qol.csv")
	v.SetDefault("artifact_dir", "artifacts")
	v.SetDefault("report_dir", "report")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("seed", 42)
	v.SetDefault("samples", 5000)
	v.SetDefault("test_ratio", 0.2)
	v.SetDefault("epochs", 200)
	v.SetDefault("learning_rate", 0.01)
	v.SetDefault("batch_size", 32)
	v.SetDefault("max_depth", 8)
	v.SetDefault("min_samples_split", 10)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("qol")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		// Missing default config is fine; defaults and env apply.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// SaveConfig writes the configuration to path as YAML.
func SaveConfig(c *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
