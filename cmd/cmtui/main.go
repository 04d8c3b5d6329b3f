package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"cmtui/cli"
	"cmtui/config"
	"cmtui/logger"
	"cmtui/manager"
	"cmtui/tui"
)

var debug bool

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmtui",
		Short: "Browse, search, and migrate cm sessions",
		Long: `cmtui is a terminal front end for the cm session manager.

Run it with no arguments for the interactive menu, or use the list and
search subcommands for one-shot output.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				fmt.Printf("Unknown command: %s\n", args[0])
				fmt.Println("Usage: cmtui [list|search <query>]")
				return nil
			}
			return runInteractive()
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.AddCommand(listCmd(), searchCmd())
	return cmd
}

// setup loads configuration, initializes logging, and builds the manager.
func setup() (*manager.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}

	logger.SetDebug(cfg.Debug)
	if path, err := logger.DefaultLogPath(); err == nil {
		if err := logger.Init(path); err != nil {
			// Logging is best-effort; the tool still works without a log file.
			fmt.Fprintln(os.Stderr, "warning: could not open log file:", err)
		}
	}

	if err := cli.ValidateCommand(cfg.Command); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	return manager.New(cfg), nil
}

func runInteractive() error {
	mgr, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	// Without a terminal there is nothing to interact with; fall back to a
	// one-shot listing so piped invocations still produce output.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return runList(mgr)
	}

	p := tea.NewProgram(tui.NewModel(mgr), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the session table and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := setup()
			if err != nil {
				return err
			}
			defer logger.Close()
			return runList(mgr)
		},
	}
}

func runList(mgr *manager.Manager) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mgr.Load(ctx); err != nil {
		return err
	}
	fmt.Println(tui.RenderSessionTable(tui.DefaultTheme(), mgr.Sessions()))
	return nil
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Rank sessions against keywords and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := setup()
			if err != nil {
				return err
			}
			defer logger.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := mgr.Load(ctx); err != nil {
				return err
			}

			query := strings.Join(args, " ")
			fmt.Println(tui.RenderSearchResults(tui.DefaultTheme(), query, mgr.Search(query)))
			return nil
		},
	}
}
