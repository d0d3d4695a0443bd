package config

// config/yaml.go

type JavascriptTarget struct {
	Source string `yaml:"source"`
	OutDir string `yaml:"out_dir"`
}

type Site struct {
	Server            Server                      `yaml:"server"`
	Paths             Paths                       `yaml:"paths"`
	Admin             Admin                       `yaml:"admin"`
	Log               Log                         `yaml:"log"`
	JavascriptTargets map[string]JavascriptTarget `yaml:"javascript"`
}

type Server struct {
	Port   string `yaml:"port"`
	Origin string `yaml:"origin"`
	// Timeouts in seconds.
	ReadTimeout  int `yaml:"read_timeout"`
	WriteTimeout int `yaml:"write_timeout"`
}

type Paths struct {
	Data           string `yaml:"data"`
	LanguageLabels string `yaml:"language_labels"`
	Static         string `yaml:"static"`
	Public         string `yaml:"public"`
}

type Admin struct {
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SessionKey string `yaml:"session_key"`
	// HashKey signs the session cookie; BlockKey optionally encrypts it.
	HashKey      string `yaml:"hash_key"`
	BlockKey     string `yaml:"block_key"`
	SecureCookie bool   `yaml:"secure_cookie"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultPassword is the shipped placeholder the admin page warns about.
const DefaultPassword = "change-me"

// AdminJSTarget names the javascript target bundled for the admin editor.
const AdminJSTarget = "admin"

func Default() Site {
	return Site{
		Server: Server{
			Port:         "9010",
			Origin:       "http://localhost:9010",
			ReadTimeout:  15,
			WriteTimeout: 15,
		},
		Paths: Paths{
			Data:           "config/commands-data.json",
			LanguageLabels: "config/languages.json",
			Static:         "static",
			Public:         "public",
		},
		Admin: Admin{
			Username:   "admin",
			Password:   DefaultPassword,
			SessionKey: "moonland_commands_admin",
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		JavascriptTargets: map[string]JavascriptTarget{
			AdminJSTarget: {Source: "assets/admin/editor.js", OutDir: "static/js"},
		},
	}
}
