// Package app wires configuration, clients, services, and the MCP server
// into one shared core used by cmd/stockpulse-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/praveshk/stockpulse/internal/clients/duck"
	"github.com/praveshk/stockpulse/internal/clients/gemini"
	"github.com/praveshk/stockpulse/internal/clients/indianapi"
	"github.com/praveshk/stockpulse/internal/clients/wikipedia"
	"github.com/praveshk/stockpulse/internal/common"
	"github.com/praveshk/stockpulse/internal/interfaces"
	"github.com/praveshk/stockpulse/internal/services/analyst"
	"github.com/praveshk/stockpulse/internal/services/research"
	"github.com/praveshk/stockpulse/internal/storage/profilefs"
)

// App holds all initialized services, clients, and the MCP server.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Store           *profilefs.Store
	StockClient     interfaces.StockAPIClient
	SearchClient    interfaces.SearchClient
	WikiClient      interfaces.EncyclopediaClient
	GeminiClient    interfaces.GeminiClient
	ResearchService interfaces.ResearchService
	AnalystService  interfaces.AnalystService
	MCPServer       *server.MCPServer
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes all services, clients, storage, and the MCP server.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Check provided path, STOCKPULSE_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("STOCKPULSE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "stockpulse.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/stockpulse.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := profilefs.NewProfileStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize profile store: %w", err)
	}

	ctx := context.Background()

	indianKey, err := common.ResolveAPIKey("indian_api_key", config.Clients.IndianAPI.APIKey)
	if err != nil {
		logger.Warn().Msg("Indian API key not configured - stock signals will rely on web aggregation")
	}

	geminiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		logger.Warn().Msg("Gemini API key not configured - analysis will use fallback text")
	}

	var stockClient interfaces.StockAPIClient
	if indianKey != "" {
		stockClient = indianapi.NewClient(indianKey,
			indianapi.WithBaseURL(config.Clients.IndianAPI.BaseURL),
			indianapi.WithLogger(logger),
			indianapi.WithRateLimit(config.Clients.IndianAPI.RateLimit),
			indianapi.WithTimeout(config.Clients.IndianAPI.GetTimeout()),
		)
	}

	searchClient := duck.NewClient(
		duck.WithBaseURL(config.Clients.Search.BaseURL),
		duck.WithLogger(logger),
		duck.WithRateLimit(config.Clients.Search.RateLimit),
		duck.WithTimeout(config.Clients.Search.GetTimeout()),
	)

	wikiClient := wikipedia.NewClient(
		wikipedia.WithBaseURL(config.Clients.Wikipedia.BaseURL),
		wikipedia.WithLogger(logger),
		wikipedia.WithTimeout(config.Clients.Wikipedia.GetTimeout()),
	)

	var geminiClient interfaces.GeminiClient
	if geminiKey != "" {
		client, err := gemini.NewClient(ctx, geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			geminiClient = client
		}
	}

	researchService := research.NewService(stockClient, searchClient, wikiClient, store, &config.Research, logger)
	analystService := analyst.NewService(geminiClient, logger)

	mcpServer := server.NewMCPServer(
		"stockpulse",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:          config,
		Logger:          logger,
		Store:           store,
		StockClient:     stockClient,
		SearchClient:    searchClient,
		WikiClient:      wikiClient,
		GeminiClient:    geminiClient,
		ResearchService: researchService,
		AnalystService:  analystService,
		MCPServer:       mcpServer,
		StartupTime:     startupStart,
	}

	a.registerTools()

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// registerTools registers all MCP tools on the App's MCPServer.
func (a *App) registerTools() {
	s := a.MCPServer

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createResearchCompanyTool(), handleResearchCompany(a.ResearchService, a.Logger))
	s.AddTool(createAnalyzeCompanyTool(), handleAnalyzeCompany(a, a.Logger))
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}
