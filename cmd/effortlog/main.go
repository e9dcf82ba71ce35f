package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	aiservice "github.com/nhle/effortlog/internal/ai"
	"github.com/nhle/effortlog/internal/app"
	"github.com/nhle/effortlog/internal/credential"
	"github.com/nhle/effortlog/internal/export"
	"github.com/nhle/effortlog/internal/holiday"
	"github.com/nhle/effortlog/internal/logbook"
	"github.com/nhle/effortlog/internal/model"
	"github.com/nhle/effortlog/internal/source/jira"
	"github.com/nhle/effortlog/internal/store"
	"github.com/nhle/effortlog/internal/theme"
)

const defaultAIBaseURL = "https://api.openai.com"

var (
	configPath   = flag.String("config", model.DefaultConfigPath(), "Path to the config file")
	dataPath     = flag.String("data", model.DefaultDataPath(), "Path to the log database")
	exportFormat = flag.String("export", "", "Print all logs to stdout and exit: csv or json")
	showVersion  = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("effortlog 1.0.0")
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	settings, err := model.LoadSettings(*configPath)
	if err != nil {
		return err
	}
	theme.Apply(*settings)

	s, err := store.NewSQLiteStore(*dataPath)
	if err != nil {
		return err
	}
	defer s.Close()

	repo := logbook.New(s)
	if err := repo.Load(ctx); err != nil {
		// A corrupt record resets to an empty collection; keep going.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if *exportFormat != "" {
		return export.Write(os.Stdout, repo.Collection(), export.Format(*exportFormat))
	}

	holidaysByDate, err := holiday.Load()
	if err != nil {
		return err
	}
	holidays := make([]model.Holiday, 0, len(holidaysByDate))
	for _, h := range holidaysByDate {
		holidays = append(holidays, h)
	}

	jiraToken, _ := credential.Get(credential.KeyJiraToken)
	jiraClient := jira.NewClient(settings.Jira.BaseURL, settings.Jira.Email, jiraToken)

	aiKey, _ := credential.Get(credential.KeyAIKey)
	assistant := aiservice.New(defaultAIBaseURL, aiKey, settings.AI.Model, "")

	m := app.New(repo, settings, holidays, jiraClient, assistant, *configPath)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
