package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/top-internal/topctl/internal/api"
	"github.com/top-internal/topctl/internal/auth"
	"github.com/top-internal/topctl/internal/config"
	"github.com/top-internal/topctl/internal/export"
	"github.com/top-internal/topctl/internal/logger"
	"github.com/top-internal/topctl/internal/store"
	"github.com/top-internal/topctl/internal/tui"
)

var (
	// CLI flags
	apiURLFlag string
	debugFlag  bool
	tokenFlag  string
	fromFlag   string
	toFlag     string
	outFlag    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "topctl",
		Short: "Terminal admin dashboard for TOP Internal",
		Long: `topctl is a terminal client for the TOP Internal admin API.

It covers the day-to-day admin surface: clients, jobs, tasks with time
tracking, timesheets, invoices, reports, and the field layout templates
for jobs and tasks.

Authentication:
  1. Run 'topctl login --token <token>' to store an API token
  2. Or set the TOP_TOKEN environment variable`,
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Override the API base URL")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging to the log file")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token",
		RunE:  runLogin,
	}
	loginCmd.Flags().StringVar(&tokenFlag, "token", "", "API token to store")
	_ = loginCmd.MarkFlagRequired("token")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		RunE:  runLogout,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Non-interactive exports",
	}
	exportTimesheetsCmd := &cobra.Command{
		Use:   "timesheets",
		Short: "Export the time report to an XLSX workbook",
		RunE:  runExportTimesheets,
	}
	exportTimesheetsCmd.Flags().StringVar(&fromFlag, "from", "", "Range start (YYYY-MM-DD), defaults to 30 days ago")
	exportTimesheetsCmd.Flags().StringVar(&toFlag, "to", "", "Range end (YYYY-MM-DD), defaults to today")
	exportTimesheetsCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output path, defaults to timesheets_<from>_<to>.xlsx")
	exportCmd.AddCommand(exportTimesheetsCmd)

	rootCmd.AddCommand(loginCmd, logoutCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config, initializes logging, and builds the API client. The
// token may legitimately be absent; the TUI renders a login hint then.
func setup() (*api.Client, *auth.FileStore, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, nil, err
	}
	if apiURLFlag != "" {
		cfg.API.URL = apiURLFlag
	}
	if debugFlag {
		cfg.Log.Level = "debug"
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, nil, fmt.Errorf("init logging: %w", err)
	}

	tokens, err := auth.NewFileStore("")
	if err != nil {
		return nil, nil, err
	}
	token, err := auth.GetToken(tokens)
	if err != nil {
		token = ""
	}

	client := api.New(cfg.API.URL, token, cfg.API.Timeout, logger.L())
	return client, tokens, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	client, tokens, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	app := tui.NewAppModel(tui.Deps{
		API:     client,
		Session: store.NewSession(tokens),
		Log:     logger.L(),
		Ctx:     context.Background(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	tokens, err := auth.NewFileStore("")
	if err != nil {
		return err
	}
	if err := tokens.Save(tokenFlag); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	fmt.Println("Token stored.")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	tokens, err := auth.NewFileStore("")
	if err != nil {
		return err
	}
	if err := tokens.Clear(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	fmt.Println("Token removed.")
	return nil
}

func runExportTimesheets(cmd *cobra.Command, args []string) error {
	client, _, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	if !client.HasToken() {
		return fmt.Errorf("not logged in: run 'topctl login --token <token>' or set %s", auth.EnvVar)
	}

	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now
	if fromFlag != "" {
		if from, err = time.Parse("2006-01-02", fromFlag); err != nil {
			return fmt.Errorf("parse --from: %w", err)
		}
	}
	if toFlag != "" {
		if to, err = time.Parse("2006-01-02", toFlag); err != nil {
			return fmt.Errorf("parse --to: %w", err)
		}
	}

	rows, err := client.Reports().Time(cmd.Context(), from, to)
	if err != nil {
		return fmt.Errorf("run report: %w", err)
	}

	path := outFlag
	if path == "" {
		path = export.DefaultFileName(from, to)
	}
	if err := export.TimeReport(path, rows); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(rows), path)
	return nil
}
