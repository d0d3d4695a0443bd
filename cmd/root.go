package cmd

import (
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ZacxDev/commands-site/config"
	"github.com/ZacxDev/commands-site/logging"
	"github.com/ZacxDev/commands-site/session"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	envPath    string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "commands-site",
		Short: "MoonLand commands site - multilingual command guide with an admin editor",
		Long: `commands-site serves the MoonLand command guide in every configured language,
exports it as static pages, and lets an operator edit the content document from
a password-protected admin page or from the command line.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "site.yaml", "Site configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.envPath, "env", ".env", "Optional .env file with COMMANDS_* overrides")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newBuildCmd(opts),
		newNormalizeCmd(opts),
		newLangCmd(opts),
		newEditCmd(opts),
	)
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// load reads the configuration and builds the logger.
func (o *options) load() (*config.Site, *zap.Logger, error) {
	if err := config.LoadDotEnv(o.envPath); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newSessionManager builds the cookie codec from the admin keys. Without a
// configured hash key a random one is used, so sessions end on restart.
func newSessionManager(cfg *config.Site, logger *zap.Logger) (*session.Manager, error) {
	hashKey := []byte(cfg.Admin.HashKey)
	if len(hashKey) == 0 {
		logger.Warn("admin.hash_key is not set, using a random key for this process")
		hashKey = securecookie.GenerateRandomKey(32)
		if hashKey == nil {
			return nil, errors.New("generate session hash key")
		}
	}

	return session.NewManager(session.Config{
		CookieName: cfg.Admin.SessionKey,
		HashKey:    hashKey,
		BlockKey:   []byte(cfg.Admin.BlockKey),
		Secure:     cfg.Admin.SecureCookie,
	})
}
