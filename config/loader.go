package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the file name searched in the working directory.
const DefaultConfigFile = ".jpnews.yaml"

// File is the on-disk YAML layout. Zero values leave the Config untouched.
//
//	server:
//	  addr: ":8000"
//	  allowed_origins: ["http://localhost:3000"]
//	  request_timeout: 5s
//	database:
//	  dir: /var/lib/jpnews
//	analyzer:
//	  dictionary: uni
//	  mode: search
//	  kanjidic2: /usr/share/kanjidic2.xml
//	furigana:
//	  format: bracket
//	  concurrency: 8
//	log:
//	  level: debug
//	  json: true
type File struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		RequestTimeout string   `yaml:"request_timeout"`
	} `yaml:"server"`
	Database struct {
		Dir string `yaml:"dir"`
	} `yaml:"database"`
	Analyzer struct {
		Dictionary string `yaml:"dictionary"`
		Mode       string `yaml:"mode"`
		Kanjidic2  string `yaml:"kanjidic2"`
	} `yaml:"analyzer"`
	Furigana struct {
		Format      string `yaml:"format"`
		Concurrency int    `yaml:"concurrency"`
	} `yaml:"furigana"`
	Log struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	} `yaml:"log"`
}

// LoadConfigFile reads a YAML configuration file. If the file does not
// exist it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// Apply copies every non-zero value of f onto c.
func (c *Config) Apply(f *File) error {
	if f == nil {
		return nil
	}
	setString(&c.Addr, f.Server.Addr)
	if len(f.Server.AllowedOrigins) > 0 {
		c.AllowedOrigins = f.Server.AllowedOrigins
	}
	if f.Server.RequestTimeout != "" {
		d, err := time.ParseDuration(f.Server.RequestTimeout)
		if err != nil {
			return fmt.Errorf("server.request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	setString(&c.DBDir, f.Database.Dir)
	setString(&c.Dictionary, f.Analyzer.Dictionary)
	setString(&c.Mode, f.Analyzer.Mode)
	setString(&c.Kanjidic2Path, f.Analyzer.Kanjidic2)
	setString(&c.Format, f.Furigana.Format)
	if f.Furigana.Concurrency != 0 {
		c.Concurrency = f.Furigana.Concurrency
	}
	setString(&c.LogLevel, f.Log.Level)
	if f.Log.JSON {
		c.LogJSON = true
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. configPath, if specified
// 2. .jpnews.yaml in the current directory
// 3. config.yaml in the XDG config directory
//
// Returns the path found, or empty string if none exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
