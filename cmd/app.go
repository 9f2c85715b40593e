// Package cmd implements the CLI application for financial coaching.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/tmaury/fincoach"
	"github.com/tmaury/fincoach/advisor"
	"github.com/tmaury/fincoach/config"
	"github.com/tmaury/fincoach/journal"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&simulateCmd{}, "analysis")
	c.Register(&runCmd{}, "analysis")
	c.Register(&whatifCmd{}, "analysis")

	c.Register(&historyCmd{}, "journal")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the tool configuration file (JSON or YAML)")
var contextFile = flag.String("context", "context.yaml", "Path to the financial context file (JSON or YAML)")
var journalPath = flag.String("journal", "", "Path to the session journal database (overrides the config)")
var offline = flag.Bool("offline", false, "Skip the reasoning collaborator and use built-in defaults")

// loadConfig returns the file-backed configuration, or the defaults when no
// file was given.
func loadConfig() (*config.Config, error) {
	if *configFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(*configFile)
}

func loadContextFile() (fincoach.SimulationContext, error) {
	return config.LoadContext(*contextFile)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// newCoach builds a Coach from the configuration. Unless running offline it
// connects the generative advisor, wrapped so its failures degrade to
// built-in defaults instead of aborting the run.
func newCoach(ctx context.Context, cfg *config.Config) (*fincoach.Coach, error) {
	log := newLogger(cfg)
	co := fincoach.NewCoach(fincoach.Offline{}, log)
	co.Simulator = fincoach.Simulator{Iterations: cfg.Simulation.Iterations, Seed: cfg.Simulation.Seed}
	co.ScenarioCount = cfg.Coach.ScenarioCount

	if *offline || cfg.Advisor.Offline {
		return co, nil
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing Gemini's client: %w", err)
	}
	failsafe := fincoach.NewFailsafe(advisor.New(client, cfg.Advisor.Model), log)
	failsafe.Timeout = cfg.Advisor.Timeout()
	co.Advisor = failsafe
	return co, nil
}

// openJournal opens the configured session journal. It returns nil without
// error when no journal is configured.
func openJournal(cfg *config.Config) (*journal.SQLite, error) {
	path := *journalPath
	if path == "" {
		path = cfg.Journal.DBPath
	}
	if path == "" {
		return nil, nil
	}
	return journal.NewSQLite(path)
}
