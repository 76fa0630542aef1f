package cmd

import (
	"os"
	"path/filepath"

	"github.com/hance08/qwallet/internal/app"
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	svc *service.Service
	cmd *cobra.Command
}

func NewInfoCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database path, node status and fee settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				svc: svc,
				cmd: cmd,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	cfg := r.svc.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	appDir := getAppDataDirOrUnknown()
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = filepath.Join(appDir, "qwallet.db")
	}

	dbExists := false
	if _, err := os.Stat(dbPath); err == nil {
		dbExists = true
	}

	items := views.SystemInfoItem{
		ConfigPath: configPath,
		DBPath:     dbPath,
		DBExists:   dbExists,
		AppDataDir: appDir,
		NodeURL:    cfg.Node.URL,
		AgentURL:   cfg.Agent.URL,
		Coin:       cfg.Wallet.Coin,
		Fee:        cfg.FeeAmount().String(),
	}

	status, err := r.svc.Node.Status(r.cmd.Context())
	if err != nil {
		items.NodeErr = err
	} else {
		items.ChainHeight = status.ChainHeight
		if !status.PublicUnknown {
			public := status.UsingPublic
			items.UsingPublic = &public
		}
	}

	return views.RenderSystemInfo(items)
}

func getAppDataDirOrUnknown() string {
	dir, err := app.GetAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
