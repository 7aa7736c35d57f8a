package app

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the StockPulse MCP server version and status. Use this to verify connectivity."),
	)
}

// createResearchCompanyTool returns the research_company tool definition
func createResearchCompanyTool() mcp.Tool {
	return mcp.NewTool("research_company",
		mcp.WithDescription("Research an Indian company across encyclopedia, news, and stock sources. Returns the company background, recent news, and a stock signal with a data quality rating."),
		mcp.WithString("company",
			mcp.Required(),
			mcp.Description("Company name to research (e.g., 'Reliance Industries', 'Tata Motors')"),
		),
	)
}

// createAnalyzeCompanyTool returns the analyze_company tool definition
func createAnalyzeCompanyTool() mcp.Tool {
	return mcp.NewTool("analyze_company",
		mcp.WithDescription("Run the full research workflow for an Indian company and generate an AI analysis: executive summary, market insights, and risks/opportunities with cited sources."),
		mcp.WithString("company",
			mcp.Required(),
			mcp.Description("Company name to analyze (e.g., 'Reliance Industries', 'Infosys')"),
		),
	)
}
