package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hance08/qwallet/cmd/contact"
	"github.com/hance08/qwallet/internal/app"
	"github.com/hance08/qwallet/internal/config"
	"github.com/hance08/qwallet/internal/errhandler"
	"github.com/hance08/qwallet/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	cfgFile = configFlagFromArgs(os.Args[1:])

	created, err := initConfig()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	if created && isInteractive() {
		if err := initWizard(); err != nil {
			os.Exit(errhandler.HandleError(err))
		}
	}

	application, cleanup, err := app.NewApp(cfg, migrations)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:           "qwallet",
		Short:         "qwallet is a terminal wallet dashboard for a Qortal node",
		Long:          `qwallet shows your balance and transaction history and sends coins through a Qortal node and signing agent.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(contact.NewContactCmd(application.Service))

	rootCmd.AddCommand(NewAccountCmd(application.Service))
	rootCmd.AddCommand(NewBalanceCmd(application.Service))
	rootCmd.AddCommand(NewHistoryCmd(application.Service))
	rootCmd.AddCommand(NewSendCmd(application.Service))
	rootCmd.AddCommand(NewWatchCmd(application.Service))
	rootCmd.AddCommand(NewInfoCmd(application.Service))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := errhandler.HandleError(rootCmd.ExecuteContext(ctx))
	stop()
	cleanup()
	os.Exit(code)
}

// configFlagFromArgs finds --config before cobra parses flags, since the
// config has to be loaded to build the commands.
func configFlagFromArgs(args []string) string {
	for i, a := range args {
		switch {
		case a == "--":
			return ""
		case a == "--config" || a == "-c":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-c="):
			return strings.TrimPrefix(a, "-c=")
		}
	}
	return ""
}

func setDefaults(d *config.Config) {
	viper.SetDefault("node.url", d.Node.URL)
	viper.SetDefault("node.timeout", d.Node.Timeout.String())
	viper.SetDefault("agent.url", d.Agent.URL)
	viper.SetDefault("wallet.coin", d.Wallet.Coin)
	viper.SetDefault("wallet.fee", d.Wallet.Fee)
	viper.SetDefault("display.page_size", d.Display.PageSize)
	viper.SetDefault("monitor.interval", d.Monitor.Interval.String())
	viper.SetDefault("send.settle_delay", d.Send.SettleDelay.String())
	viper.SetDefault("send.verify_recipient", d.Send.VerifyRecipient)
	viper.SetDefault("breaker.max_requests", d.Breaker.MaxRequests)
	viper.SetDefault("breaker.interval", d.Breaker.Interval.String())
	viper.SetDefault("breaker.timeout", d.Breaker.Timeout.String())
	viper.SetDefault("breaker.failure_ratio", d.Breaker.FailureRatio)
	viper.SetDefault("breaker.min_requests", d.Breaker.MinRequests)
	viper.SetDefault("database.path", d.Database.Path)
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
}

// initConfig loads the config file, creating it with defaults on first run.
// It reports whether the file was just created.
func initConfig() (bool, error) {
	setDefaults(config.NewDefault())

	created := false
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return false, fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		created, err = createDefaultConfig(appDir)
		if err != nil {
			return false, fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("QWALLET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return false, fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return false, fmt.Errorf("unable to decode into struct, %v", err)
	}

	if cfg.Database.Path != "" {
		expanded, err := expandPath(cfg.Database.Path)
		if err != nil {
			return false, fmt.Errorf("invalid database path: %w", err)
		}
		cfg.Database.Path = expanded
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return created, nil
}

func initWizard() error {
	nodeURL, err := prompts.PromptInitNode(viper.GetString("node.url"))
	if err != nil {
		return err
	}

	viper.Set("node.url", nodeURL)
	viper.Set("agent.url", nodeURL)

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	cfg.Node.URL = nodeURL
	cfg.Agent.URL = nodeURL

	pterm.Success.Printf("Configuration saved. Node set to: %s\n", nodeURL)

	return nil
}

func isInteractive() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}

func createDefaultConfig(appDir string) (bool, error) {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
