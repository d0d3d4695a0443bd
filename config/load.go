package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment override, e.g. COMMANDS_ADMIN_PASSWORD.
const EnvPrefix = "COMMANDS"

// envOverrides holds values that replace the site file when set.
type envOverrides struct {
	Port           string `envconfig:"PORT"`
	Origin         string `envconfig:"ORIGIN"`
	DataPath       string `envconfig:"DATA_PATH"`
	LanguageLabels string `envconfig:"LANGUAGE_LABELS_PATH"`
	StaticDir      string `envconfig:"STATIC_DIR"`
	PublicDir      string `envconfig:"PUBLIC_DIR"`
	AdminUsername  string `envconfig:"ADMIN_USERNAME"`
	AdminPassword  string `envconfig:"ADMIN_PASSWORD"`
	SessionKey     string `envconfig:"ADMIN_SESSION_KEY"`
	HashKey        string `envconfig:"ADMIN_HASH_KEY"`
	BlockKey       string `envconfig:"ADMIN_BLOCK_KEY"`
	SecureCookie   *bool  `envconfig:"ADMIN_SECURE_COOKIE"`
	LogLevel       string `envconfig:"LOG_LEVEL"`
	LogFormat      string `envconfig:"LOG_FORMAT"`
}

// LoadDotEnv loads a .env file when present. Existing variables win.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return errors.Wrapf(godotenv.Load(path), "load %s", path)
}

// Load builds the site configuration from defaults, the YAML site file (if
// it exists) and COMMANDS_* environment variables, in that order.
func Load(path string) (*Site, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(err, "read %s", path)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parse %s", path)
			}
		}
	}

	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}
	env.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (e envOverrides) apply(cfg *Site) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&cfg.Server.Port, e.Port)
	set(&cfg.Server.Origin, e.Origin)
	set(&cfg.Paths.Data, e.DataPath)
	set(&cfg.Paths.LanguageLabels, e.LanguageLabels)
	set(&cfg.Paths.Static, e.StaticDir)
	set(&cfg.Paths.Public, e.PublicDir)
	set(&cfg.Admin.Username, e.AdminUsername)
	set(&cfg.Admin.SessionKey, e.SessionKey)
	set(&cfg.Admin.HashKey, e.HashKey)
	set(&cfg.Admin.BlockKey, e.BlockKey)
	set(&cfg.Log.Level, e.LogLevel)
	set(&cfg.Log.Format, e.LogFormat)
	if e.AdminPassword != "" {
		cfg.Admin.Password = e.AdminPassword
	}
	if e.SecureCookie != nil {
		cfg.Admin.SecureCookie = *e.SecureCookie
	}
}

func (s Site) Validate() error {
	switch {
	case strings.TrimSpace(s.Server.Port) == "":
		return errors.New("config: server.port is required")
	case strings.TrimSpace(s.Paths.Data) == "":
		return errors.New("config: paths.data is required")
	case strings.TrimSpace(s.Admin.SessionKey) == "":
		return errors.New("config: admin.session_key is required")
	}
	if n := len(s.Admin.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		return errors.New("config: admin.block_key must be 16, 24 or 32 bytes")
	}
	return nil
}

// UsesDefaultPassword reports whether the shipped placeholder password is
// still configured.
func (s Site) UsesDefaultPassword() bool {
	return s.Admin.Password == DefaultPassword
}
