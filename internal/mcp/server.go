package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// New creates an MCP server with all tools and resources registered. maxCues
// bounds the form cues reported in the components detail.
func New(ds DataSource, version string, maxCues int, log zerolog.Logger) *server.MCPServer {
	s := server.NewMCPServer("CoachTip", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("CoachTip coaching cue server. Compose short coaching tips for an exercise given the client's goal, training phase, experience and injuries, check exercises against injuries, and search the exercise catalog."),
	)

	h := &handlers{ds: ds, maxCues: maxCues, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolComposeCoachTip, Handler: h.composeCoachTip},
		server.ServerTool{Tool: toolCheckInjuryConflict, Handler: h.checkInjuryConflict},
		server.ServerTool{Tool: toolSearchExercises, Handler: h.searchExercises},
		server.ServerTool{Tool: toolDescribeRPE, Handler: h.describeRPE},
	)

	s.AddResources(
		server.ServerResource{Resource: resRPEScale, Handler: h.rpeScale},
		server.ServerResource{Resource: resTempoNotation, Handler: h.tempoNotation},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds      DataSource
	maxCues int
	log     zerolog.Logger
}

var resRPEScale = mcp.NewResource(
	"coachtip://rpe_scale",
	"RPE Scale",
	mcp.WithResourceDescription("Rate of perceived exertion scale from 1 to 10 with descriptions"),
	mcp.WithMIMEType("application/json"),
)

var resTempoNotation = mcp.NewResource(
	"coachtip://tempo_notation",
	"Tempo Notation",
	mcp.WithResourceDescription("How to read the tempo prescriptions used in coaching tips"),
	mcp.WithMIMEType("application/json"),
)
