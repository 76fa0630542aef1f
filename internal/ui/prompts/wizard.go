package prompts

import (
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
)

const DefaultNodeURL = "http://127.0.0.1:12391"

// PromptInitNode runs on first start to pick the node the wallet talks to.
func PromptInitNode(currDefault string) (string, error) {
	if currDefault == "" {
		currDefault = DefaultNodeURL
	}
	selection := currDefault

	err := huh.NewSelect[string]().
		Title("Welcome to qwallet! This is the first execute, please choose your node:").
		Description("Balances, history and payments all go through this node").
		Options(
			huh.NewOption("Local node ("+DefaultNodeURL+")", DefaultNodeURL),
			huh.NewOption("Other", "Other"),
		).
		Value(&selection).
		Run()

	if err != nil {
		return "", err
	}

	if selection != "Other" {
		return selection, nil
	}

	var customInput string
	err = huh.NewInput().
		Title("Please enter the node URL:").
		Description("For example http://192.168.1.10:12391").
		Value(&customInput).
		Validate(ValidateNodeURL).
		Run()
	if err != nil {
		return "", err
	}

	return strings.TrimRight(strings.TrimSpace(customInput), "/"), nil
}

func ValidateNodeURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("node URL is required")
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return errors.New("node URL must look like http://host:port")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("node URL must start with http:// or https://")
	}
	return nil
}
