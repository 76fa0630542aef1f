package views

import (
	"strconv"

	"github.com/hance08/qwallet/internal/ui"
	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath  string
	DBPath      string
	DBExists    bool // true = Found, false = Not Found
	AppDataDir  string
	NodeURL     string
	AgentURL    string
	Coin        string
	Fee         string
	ChainHeight int64
	NodeErr     error
	UsingPublic *bool
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	height := strconv.FormatInt(data.ChainHeight, 10)
	if data.NodeErr != nil {
		height = pterm.Red("Unreachable: " + data.NodeErr.Error())
	}

	nodeKind := pterm.Gray("Unknown")
	if data.UsingPublic != nil {
		nodeKind = pterm.Green("Local")
		if *data.UsingPublic {
			nodeKind = pterm.Yellow("Public")
		}
	}

	ui.PrintL2Title("System Info")

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"AppData Directory", data.AppDataDir},
		{"Node URL", data.NodeURL},
		{"Agent URL", data.AgentURL},
		{"Node Type", nodeKind},
		{"Chain Height", height},
		{"Coin / Fee", data.Coin + " / " + data.Fee},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
