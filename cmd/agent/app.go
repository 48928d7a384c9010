package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"agent-lab/agent"
	"agent-lab/analyzers"
	"agent-lab/internal"
	"agent-lab/repositories"
	"agent-lab/services"
)

// app owns every long-lived component and their teardown order.
type app struct {
	config   internal.Config
	log      *slog.Logger
	vault    internal.Vault
	agent    *agent.Agent
	display  *services.Display
	pipeline *services.Pipeline
	archive  *repositories.ArchiveRepository
	stdin    *bufio.Reader

	db    *badger.DB
	index *bluge.Writer
}

func newApp() (*app, error) {
	config, err := internal.Load()
	if err != nil {
		return nil, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	vault := internal.NewVault(config.VaultDir)
	if err := vault.Ensure(); err != nil {
		return nil, err
	}

	db, err := badger.Open(badger.DefaultOptions(vault.Archive).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("archive opening failed: %w", err)
	}

	index, err := bluge.OpenWriter(bluge.DefaultConfig(vault.Index))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open search index: %w", err)
	}

	set, err := analyzers.NewSet()
	if err != nil {
		_ = index.Close()
		_ = db.Close()
		return nil, fmt.Errorf("analyzer setup failed: %w", err)
	}

	var model llms.Model
	if config.AgentEnabled {
		llm, err := openai.New(
			openai.WithToken(config.OpenRouterAPIKey),
			openai.WithModel(config.OpenRouterModel),
			openai.WithBaseURL(config.OpenRouterBaseURL),
		)
		if err != nil {
			_ = index.Close()
			_ = db.Close()
			return nil, fmt.Errorf("model client setup failed: %w", err)
		}
		model = llm
	} else {
		log.Info("Agent disabled, running heuristic analyzers only")
	}

	brain := agent.New(agent.Options{
		Model:       model,
		Analyzers:   set,
		Logger:      log,
		Temperature: config.AgentTemperature,
		MaxTokens:   config.AgentMaxTokens,
		Timeout:     config.AgentTimeout,
	})

	archive := repositories.NewArchiveRepository(db, index, log)
	display := services.NewDisplay(os.Stdout)
	stdin := bufio.NewReader(os.Stdin)
	gate := services.NewApprovalGate(stdin, os.Stdout, log)
	executor := services.NewExecutor(vault.Actions, vault.Logs, os.Stdout, log)
	pipeline := services.NewPipeline(brain, display, gate, executor, archive, log)

	return &app{
		config:   config,
		log:      log,
		vault:    vault,
		agent:    brain,
		display:  display,
		pipeline: pipeline,
		archive:  archive,
		stdin:    stdin,
		db:       db,
		index:    index,
	}, nil
}

func (a *app) Close() {
	a.log.Info("Closing search index...")
	_ = a.index.Close()
	a.log.Info("Closing BadgerDB...")
	_ = a.db.Close()
}
