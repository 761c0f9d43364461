package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"grievlog/internal/config"
	errs "grievlog/internal/errors"
	"grievlog/internal/history"
	"grievlog/internal/logging"
	"grievlog/internal/sheet"
	"grievlog/internal/tui"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		// no args launches the interactive app
		return handleTUI(ctx, nil)
	}
	cmd := args[0]
	switch cmd {
	case "tui":
		return handleTUI(ctx, args[1:])
	case "list":
		return handleList(ctx, args[1:])
	case "submit":
		return handleSubmit(ctx, args[1:])
	case "config":
		return handleConfig(ctx, args[1:])
	case "version":
		fmt.Println(version)
		return nil
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func usage() {
	fmt.Println(strings.TrimSpace(`grievlog - log grievances to a shared sheet

Usage:
  grievlog [command] [flags]

Commands:
  tui      interactive app (default when no command is given)
  list     print every submission
  submit   log one grievance from the command line
  config   show each setting and the source it resolved from
  version  print the version

Settings resolve from the environment first, then config.yml, then a
default. SHEET_API_URL is required; see 'grievlog config'.`))
}

// setup loads config and builds the logger and resolver shared by every
// subcommand.
func setup(configPath string) (*config.Config, *config.Resolver, *logging.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, nil, nil, err
	}
	log := logging.New(cfg.Logging.Level, strings.EqualFold(cfg.Logging.Format, "json"))
	return cfg, config.NewResolver(cfg), log, nil
}

func handleTUI(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config.yml (default: search)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, res, log, err := setup(*configPath)
	if err != nil {
		return err
	}

	// A missing API URL is not fatal here: the app launches and shows
	// the problem, everything else stays interactive.
	var client tui.SheetClient
	apiURL, cfgErr := res.APIURL()
	if cfgErr == nil {
		client = sheet.New(apiURL, cfg.Timeout(), log)
	}

	assets := tui.Assets{}
	if p, ok := res.Image(config.KeyHeaderImage); ok {
		assets.Header = p
	}
	if p, ok := res.Image(config.KeySidebarImage); ok {
		assets.Sidebar = p
	}
	if p, ok := res.Image(config.KeyFooterImage); ok {
		assets.Footer = p
	}

	m := tui.New(client, cfgErr, assets, log)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func handleList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config.yml (default: search)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, res, log, err := setup(*configPath)
	if err != nil {
		return err
	}
	apiURL, err := res.APIURL()
	if err != nil {
		return errs.ConfigError(config.KeyAPIURL, err)
	}
	client := sheet.New(apiURL, cfg.Timeout(), log)
	rows, err := client.FetchAll(ctx)
	if err != nil {
		return errs.NetworkError("fetch", err)
	}
	printRows(rows)
	return nil
}

func printRows(rows []sheet.Record) {
	if len(rows) == 0 {
		fmt.Println("No submissions yet.")
		return
	}
	fmt.Printf("%-20s  %-16s  %-4s  %-12s  %s\n", "TIMESTAMP", "WHEN", "SEEN", "STATUS", "GRIEVANCE")
	for _, r := range rows {
		when := "-"
		if t, err := sheet.ParseTimestamp(r.Timestamp); err == nil {
			when = humanize.Time(t)
		}
		seen := "-"
		if history.Classify(r.Status) == history.Seen {
			seen = "yes"
		}
		fmt.Printf("%-20s  %-16s  %-4s  %-12s  %s\n", r.Timestamp, when, seen, r.Status, r.Grievance)
	}
}

func handleSubmit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config.yml (default: search)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		return errors.New("nothing to submit: provide the grievance text as arguments")
	}
	cfg, res, log, err := setup(*configPath)
	if err != nil {
		return err
	}
	apiURL, err := res.APIURL()
	if err != nil {
		return errs.ConfigError(config.KeyAPIURL, err)
	}
	client := sheet.New(apiURL, cfg.Timeout(), log)
	rec := sheet.Record{Timestamp: sheet.NewTimestamp(), Grievance: text}
	if err := client.Submit(ctx, rec); err != nil {
		return errs.NetworkError("submit", err)
	}
	fmt.Println("Your thought has been logged.")
	// one follow-up fetch, same as the interactive flow
	rows, err := client.FetchAll(ctx)
	if err != nil {
		log.Warnf("logged, but refresh failed: %v", err)
		return nil
	}
	fmt.Printf("The sheet now has %d submissions.\n", len(rows))
	return nil
}

func handleConfig(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config.yml (default: search)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, res, _, err := setup(*configPath)
	if err != nil {
		return err
	}
	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		fmt.Println("config file: (none found)")
	} else {
		fmt.Printf("config file: %s\n", path)
	}
	keys := []string{
		config.KeyAPIURL,
		config.KeyHeaderImage,
		config.KeySidebarImage,
		config.KeyFooterImage,
	}
	for _, key := range keys {
		v, err := res.Resolve(key)
		switch {
		case err != nil:
			fmt.Printf("%-14s  (missing, required)\n", key)
		case !v.Present():
			fmt.Printf("%-14s  (absent, optional)\n", key)
		default:
			fmt.Printf("%-14s  %s  [%s]\n", key, v.Raw, v.Source)
		}
	}
	return nil
}
