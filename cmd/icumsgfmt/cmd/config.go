package cmd

import (
	"errors"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/pyrocat101/icumsgfmt/parser"
)

var configFile string

// Config is the optional icumsgfmt.yaml file controlling parser policy and
// the locales a `check` run validates messages against.
type Config struct {
	Locales            []string `yaml:"locales"`
	ShouldIgnoreTag    bool     `yaml:"ignoreTags"`
	RequireOtherClause bool     `yaml:"requireOtherClause"`
}

// LoadConfig reads and validates the config file named by --config. A
// missing --config flag is not an error; it simply yields the zero Config.
func LoadConfig() (Config, error) {
	if configFile == "" {
		return Config{}, nil
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return Config{}, errors.New("config file not found: " + configFile)
	}

	raw, err := os.ReadFile(configFile)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}

	for _, tag := range cfg.Locales {
		if _, err := language.Parse(tag); err != nil {
			return Config{}, errors.New("invalid locale " + tag + ": " + err.Error())
		}
	}

	return cfg, nil
}

// ParserOptions converts the config's parser-policy fields into a
// parser.Options the Parser package understands.
func (cfg Config) ParserOptions() *parser.Options {
	return &parser.Options{
		ShouldIgnoreTag:    cfg.ShouldIgnoreTag,
		RequireOtherClause: cfg.RequireOtherClause,
	}
}
