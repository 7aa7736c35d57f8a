package app

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/praveshk/stockpulse/internal/common"
	"github.com/praveshk/stockpulse/internal/interfaces"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("StockPulse MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleResearchCompany implements the research_company tool
func handleResearchCompany(researchService interfaces.ResearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		company, err := request.RequireString("company")
		if err != nil || company == "" {
			return errorResult("Error: company parameter is required"), nil
		}

		profile, err := researchService.Collect(ctx, company)
		if err != nil {
			logger.Error().Err(err).Str("company", company).Msg("Research failed")
			return errorResult(fmt.Sprintf("Research error: %v", err)), nil
		}

		return textResult(formatProfile(profile)), nil
	}
}

// handleAnalyzeCompany implements the analyze_company tool
func handleAnalyzeCompany(a *App, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		company, err := request.RequireString("company")
		if err != nil || company == "" {
			return errorResult("Error: company parameter is required"), nil
		}

		profile, analysis, err := a.RunResearch(ctx, company)
		if err != nil {
			logger.Error().Err(err).Str("company", company).Msg("Analysis failed")
			return errorResult(fmt.Sprintf("Analysis error: %v", err)), nil
		}

		return textResult(formatAnalysis(profile, analysis)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
