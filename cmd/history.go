package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hance08/qwallet/internal/model"
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/ui/prompts"
	"github.com/hance08/qwallet/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type historyFlags struct {
	Category string
	Page     int
	Size     string
}

type historyRunner struct {
	svc   *service.Service
	flags *historyFlags
	cmd   *cobra.Command
}

func NewHistoryCmd(svc *service.Service) *cobra.Command {
	flags := &historyFlags{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show transaction history by category",
		Long: `Show the merged confirmed and pending transactions of one category, newest first.

	Categories: Payment, Arbitrary, AT, Group, Name, Asset, Poll, RewardShare

	Without -C an interactive terminal asks for the category.

	Examples:
	# First page of payments
	qwallet history -C payment

	# Second page of group transactions, 10 rows per page
	qwallet history -C group -p 2 -n 10

	# Every name transaction on one page
	qwallet history -C name -n all

	# First page of every category
	qwallet history -C all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &historyRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Category, "category", "C", string(model.CategoryPayment), "Transaction category, or all")
	cmd.Flags().IntVarP(&flags.Page, "page", "p", 1, "Page number, starting at 1")
	cmd.Flags().StringVarP(&flags.Size, "size", "n", "", "Rows per page (5, 10, 25 or all)")

	return cmd
}

func (r *historyRunner) Run() error {
	if !r.cmd.Flags().Changed("category") && isInteractive() {
		options := make([]string, 0, len(model.Categories)+1)
		for _, c := range model.Categories {
			options = append(options, string(c))
		}
		options = append(options, "all")

		choice, err := prompts.PromptSelect("Category:", options, r.flags.Category)
		if err != nil {
			return err
		}
		r.flags.Category = choice
	}

	categories, err := parseCategories(r.flags.Category)
	if err != nil {
		return err
	}
	size, err := parsePageSize(r.flags.Size, r.svc.Config.Display.PageSize)
	if err != nil {
		return err
	}
	if r.flags.Page < 1 {
		return fmt.Errorf("page must be 1 or greater")
	}

	ctx := r.cmd.Context()
	session, err := openSession(ctx, r.svc, nil)
	if err != nil {
		return err
	}
	defer session.Teardown()

	spinner, _ := pterm.DefaultSpinner.Start("Loading history...")
	<-session.History.SetAddress(session.Account.Address)
	spinner.Stop()

	chainHeight, err := r.svc.Node.ChainHeight(ctx)
	if err != nil {
		pterm.Warning.Printf("Chain height unavailable, confirmations not shown: %v\n", err)
		chainHeight = 0
	}

	var failed []error
	for _, category := range categories {
		state := session.History.State(category)
		items := views.BuildTransactionItems(state.Transactions, session.Account.Address, chainHeight, r.svc.Contacts.LabelFor)
		page := service.Paginate(items, r.flags.Page-1, size)

		view := views.NewTransactionListView(string(category))
		view.Loaded = state.Loaded
		view.Err = state.Err
		if err := view.Render(page); err != nil {
			return err
		}
		if !state.Loaded && state.Err != nil {
			failed = append(failed, state.Err)
		}
	}

	// Only fail when nothing could be shown.
	if len(failed) == len(categories) {
		return failed[0]
	}
	return nil
}

func parseCategories(raw string) ([]model.Category, error) {
	if strings.EqualFold(strings.TrimSpace(raw), "all") {
		return model.Categories, nil
	}
	category, err := model.ParseCategory(raw)
	if err != nil {
		return nil, err
	}
	return []model.Category{category}, nil
}

func parsePageSize(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	switch raw {
	case "":
		if fallback == 0 {
			return service.ShowAll, nil
		}
		return fallback, nil
	case "all":
		return service.ShowAll, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n == 0 || n < service.ShowAll {
		return 0, fmt.Errorf("invalid page size '%s' (use a positive number or 'all')", raw)
	}
	return n, nil
}
