package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/coachtip/internal/coaching"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) rpeScale(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, coaching.RPEScale)
}

func (h *handlers) tempoNotation(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, coaching.TempoNotation)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
