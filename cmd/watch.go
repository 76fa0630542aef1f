package cmd

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync/atomic"

	"github.com/hance08/qwallet/internal/metrics"
	"github.com/hance08/qwallet/internal/model"
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const dashboardLatest = 5

type watchFlags struct {
	MetricsAddr string
	Category    string
}

type watchRunner struct {
	svc   *service.Service
	flags *watchFlags
	cmd   *cobra.Command

	// chain height is refreshed alongside the balance
	height atomic.Int64
}

func NewWatchCmd(svc *service.Service) *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard of balance and history",
		Long: `Keep balance and history up to date on screen. The balance is polled on the
	configured monitor interval. Type r and enter to refresh now, q to quit.

	Example: qwallet watch --metrics-addr 127.0.0.1:9464`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &watchRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVar(&flags.MetricsAddr, "metrics-addr", "", "Serve /metrics and /healthz on this address")
	cmd.Flags().StringVarP(&flags.Category, "category", "C", string(model.CategoryPayment), "Category shown in the latest transactions table")

	return cmd
}

func (r *watchRunner) Run() error {
	category, err := model.ParseCategory(r.flags.Category)
	if err != nil {
		return err
	}

	session, err := openSession(r.cmd.Context(), r.svc, nil)
	if err != nil {
		return err
	}
	defer session.Teardown()

	ctx, cancel := context.WithCancel(r.cmd.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if r.flags.MetricsAddr != "" {
		g.Go(func() error {
			return metrics.Serve(ctx, r.flags.MetricsAddr, r.svc.Metrics, r.svc.Logger)
		})
	}

	redraw := make(chan struct{}, 1)
	session.Balance.Subscribe(func(service.BalanceState) {
		if h, err := r.svc.Node.ChainHeight(ctx); err == nil {
			r.height.Store(h)
		}
		wake(redraw)
	})
	session.History.Subscribe(func(model.Category, service.CategoryState) { wake(redraw) })

	area, err := pterm.DefaultArea.Start()
	if err != nil {
		return err
	}
	defer func() { _ = area.Stop() }()

	keys := make(chan string)
	go readKeys(keys)

	session.Start()

	g.Go(func() error {
		r.draw(area, session, category)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-redraw:
				r.draw(area, session, category)
			case key, ok := <-keys:
				if !ok {
					keys = nil
					continue
				}
				switch key {
				case "r":
					session.RefreshAll()
					r.draw(area, session, category)
				case "q":
					cancel()
					return nil
				}
			}
		}
	})

	return g.Wait()
}

func (r *watchRunner) draw(area *pterm.AreaPrinter, session *service.Session, category model.Category) {
	state := session.History.State(category)

	items := views.BuildTransactionItems(state.Transactions, session.Account.Address, r.height.Load(), r.svc.Contacts.LabelFor)
	latest := service.Paginate(items, 0, dashboardLatest)

	out, err := views.RenderDashboard(views.DashboardItem{
		Account:    session.Account,
		Coin:       r.svc.Config.Wallet.Coin,
		Balance:    session.Balance.State(),
		Categories: session.History.Snapshot(),
		Refreshing: session.History.Refreshing(),
		Latest:     latest.Items,
	})
	if err != nil {
		r.svc.Logger.Sugar().Warnw("render dashboard", "error", err)
		return
	}
	area.Update(out)
}

// readKeys sends each trimmed, lower-cased stdin line until stdin closes.
func readKeys(out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		out <- strings.ToLower(strings.TrimSpace(scanner.Text()))
	}
}

// wake signals ch without blocking.
func wake(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
