package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"github.com/yurifrl/finscore/pkg/advice"
	"github.com/yurifrl/finscore/pkg/classifier"
	"github.com/yurifrl/finscore/pkg/parser"
)

const envPrefix = "FINSCORE"

type Config struct {
	LogLevel   string           `mapstructure:"log_level"`
	OutputPath string           `mapstructure:"output_path"`
	Parser     ParserConfig     `mapstructure:"parser"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Advice     advice.Config    `mapstructure:"advice"`
	Server     ServerConfig     `mapstructure:"server"`
	YNAB       YNABConfig       `mapstructure:"ynab"`
}

type ParserConfig struct {
	MaxInputBytes int `mapstructure:"max_input_bytes"`
}

type ClassifierConfig struct {
	Precedence string `mapstructure:"precedence"`
	RulesFile  string `mapstructure:"rules_file"`
}

type ServerConfig struct {
	Addr           string `mapstructure:"addr"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

type YNABConfig struct {
	Token     string `mapstructure:"token"`
	BudgetID  string `mapstructure:"budget_id"`
	AccountID string `mapstructure:"account_id"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"log-level":       "log_level",
	"output":          "output_path",
	"max-input-bytes": "parser.max_input_bytes",
	"precedence":      "classifier.precedence",
	"rules":           "classifier.rules_file",
	"addr":            "server.addr",
	"budget":          "ynab.budget_id",
	"account":         "ynab.account_id",
}

func setDefaults(v *viper.Viper) {
	def := advice.DefaultConfig()
	v.SetDefault("log_level", "info")
	v.SetDefault("output_path", "")
	v.SetDefault("parser.max_input_bytes", parser.DefaultMaxInputBytes)
	v.SetDefault("classifier.precedence", string(classifier.PrecedenceClassifier))
	v.SetDefault("classifier.rules_file", "")
	v.SetDefault("advice.annual_rate", def.AnnualRate)
	v.SetDefault("advice.tenures", def.Tenures)
	v.SetDefault("advice.safe_emi_ratio", def.SafeEMIRatio)
	v.SetDefault("advice.emi_step", def.EMIStep)
	v.SetDefault("server.addr", "0.0.0.0:3000")
	v.SetDefault("server.max_upload_bytes", 10<<20)
	v.SetDefault("ynab.token", "")
	v.SetDefault("ynab.budget_id", "")
	v.SetDefault("ynab.account_id", "")
}

// Build layers defaults, config file, .env, FINSCORE_* environment variables
// and any flags in flags that map to a config key, later layers winning.
// An empty cfgFile looks for an optional config.yaml in the working
// directory.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if _, err := classifier.ParsePrecedence(c.Classifier.Precedence); err != nil {
		return fmt.Errorf("invalid classifier.precedence: %w", err)
	}
	if c.Parser.MaxInputBytes <= 0 {
		return fmt.Errorf("invalid parser.max_input_bytes: %d", c.Parser.MaxInputBytes)
	}
	return nil
}

// Level is the parsed LogLevel; Validate has already rejected bad values.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Precedence is the parsed classifier precedence.
func (c *Config) Precedence() classifier.Precedence {
	p, err := classifier.ParsePrecedence(c.Classifier.Precedence)
	if err != nil {
		return classifier.PrecedenceClassifier
	}
	return p
}
