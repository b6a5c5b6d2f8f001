package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bookmarked/internal/adapters/web"
	"bookmarked/internal/application"
	"bookmarked/internal/domain"
	"bookmarked/internal/iteration"
	"bookmarked/internal/ports"
)

var checkFailedOnly bool

var checkLinksCmd = &cobra.Command{
	Use:   "check-links [address]...",
	Short: "Check that bookmarked URLs still answer",
	Long: `Request every bookmark below the given folders (default: all of them)
one at a time and print each status. Ctrl-C stops the check.

Examples:
  bookmarks-cli check-links
  bookmarks-cli check-links /0 --failed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := web.NewClient(web.WithLogger(logger))
		return iterate(cmd, args, iteration.LinkCheck{}, web.LinkChecker{Client: client})
	},
}

var refreshIconsCmd = &cobra.Command{
	Use:   "refresh-icons [address]...",
	Short: "Look up favicons for bookmarks",
	Long: `Fetch each bookmark's page, find its icon and store the icon URL.

Example:
  bookmarks-cli refresh-icons /2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := GetWorkspace()
		client := web.NewClient(web.WithLogger(logger))
		action := iteration.IconRefresh{OnIcon: func(n *domain.Node, icon string) {
			if err := ws.SetIcon(n, icon); err != nil {
				logger.Warn("failed to store icon", zap.String("url", n.URL), zap.Error(err))
			}
		}}
		return iterate(cmd, args, action, web.IconFinder{Client: client})
	},
}

// iterate runs one iterator over the selected bookmarks to completion and
// prints the status it left on each
func iterate(cmd *cobra.Command, args []string, action iteration.Action, fetcher ports.Fetcher) error {
	addrs := []domain.Address{domain.RootAddress()}
	if len(args) > 0 {
		addrs = addrs[:0]
		for _, s := range args {
			a, err := application.ValidateAddress("address", s)
			if err != nil {
				return err
			}
			addrs = append(addrs, a)
		}
	}

	ws := GetWorkspace()
	doc := ws.Document()
	targets := iteration.Targets(doc, addrs)
	if len(targets) == 0 {
		return fmt.Errorf("no bookmarks at %v", addrs)
	}

	sched := iteration.NewScheduler()
	board := iteration.NewStatusBoard()
	h := iteration.NewHolder(action, fetcher, sched, board, ws.Editor(),
		iteration.WithTimeout(cfg.FetchTimeout),
		iteration.WithLogger(logger),
	)
	it := h.Start(targets)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if err := sched.RunUntilIdle(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		h.CancelAll()
		fmt.Fprintln(cmd.ErrOrStderr(), "Interrupted")
	}

	out := cmd.OutOrStdout()
	for _, n := range targets {
		status, ok := board.Get(n)
		if !ok {
			continue
		}
		if checkFailedOnly && !failed(status) {
			continue
		}
		a, err := doc.AddressOf(n)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "%-24s %s <%s>\n", status, a, n.URL)
	}

	completed, failures, skipped := it.Stats()
	fmt.Fprintf(out, "%d done, %d failed, %d skipped\n", completed, failures, skipped)
	return nil
}

// failed reports whether a link status is anything but a 2xx answer
func failed(status string) bool {
	return len(status) < 1 || status[0] != '2'
}

func init() {
	checkLinksCmd.Flags().BoolVar(&checkFailedOnly, "failed", false, "only list links that did not answer 2xx")
	rootCmd.AddCommand(checkLinksCmd)
	rootCmd.AddCommand(refreshIconsCmd)
}
