// Package app wires configuration, storage, clients and services into the
// shared core used by cmd/finagent-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/santisabra00/finagent/internal/agent"
	"github.com/santisabra00/finagent/internal/clients/gemini"
	"github.com/santisabra00/finagent/internal/clients/yahoo"
	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/services/portfolio"
	"github.com/santisabra00/finagent/internal/services/watchlist"
	"github.com/santisabra00/finagent/internal/storage"
	"github.com/santisabra00/finagent/internal/tools"
)

// App holds all initialized services, clients and the MCP server.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	LLMClient        interfaces.LLMClient
	MarketClient     interfaces.MarketDataClient
	WatchlistService interfaces.WatchlistService
	PortfolioService interfaces.PortfolioService
	Registry         *agent.Registry
	ChatService      interfaces.ChatService
	MCPServer        *server.MCPServer
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, services, the agent loop and the MCP
// server. configPath may be empty, in which case FINAGENT_CONFIG and the
// binary directory are checked.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()
	if configPath == "" {
		configPath = os.Getenv("FINAGENT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "finagent.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/finagent.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		if _, statErr := os.Stat(config.Storage.Path); os.IsNotExist(statErr) {
			config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
		}
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	geminiKey, err := common.ResolveAPIKey([]string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}, config.Clients.Gemini.APIKey)
	if err != nil {
		return nil, fmt.Errorf("gemini API key not configured: %w", err)
	}

	llmClient, err := gemini.NewClient(ctx, geminiKey,
		gemini.WithModel(config.Clients.Gemini.Model),
		gemini.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	marketClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	watchlistService := watchlist.NewService(storageManager.WatchlistStore(), logger)
	portfolioService := portfolio.NewService(storageManager.PortfolioStore(), marketClient, logger)

	registry := agent.NewRegistry(logger)
	tools.RegisterAll(registry,
		tools.NewMarketTools(marketClient, config.Agent.HistoryDays, logger),
		tools.NewWatchlistTools(watchlistService),
		tools.NewPortfolioTools(portfolioService),
	)

	chatService := agent.New(llmClient, registry, storageManager.ConversationStore(),
		agent.WithMaxToolRounds(config.Agent.MaxToolRounds),
		agent.WithLogger(logger),
	)

	mcpServer := server.NewMCPServer(
		"finagent",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		LLMClient:        llmClient,
		MarketClient:     marketClient,
		WatchlistService: watchlistService,
		PortfolioService: portfolioService,
		Registry:         registry,
		ChatService:      chatService,
		MCPServer:        mcpServer,
		StartupTime:      startupStart,
	}

	a.registerMCPTools()

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")
	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
