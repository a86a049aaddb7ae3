package mcp

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// rpc sends one JSON-RPC message to the server and returns the decoded result.
func rpc(t *testing.T, srv *server.MCPServer, msg string) map[string]any {
	t.Helper()
	resp := srv.HandleMessage(context.Background(), json.RawMessage(msg))
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Result map[string]any `json:"result"`
		Error  any            `json:"error"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Error != nil {
		t.Fatalf("%s: error %v", msg, out.Error)
	}
	return out.Result
}

// TestNewRegistersToolsAndResources verifies the advertised tool and resource set.
func TestNewRegistersToolsAndResources(t *testing.T) {
	store := openTestStore(t)
	srv := New(store, "test", 2, zerolog.Nop())

	rpc(t, srv, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`)

	tools := rpc(t, srv, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	var names []string
	for _, tool := range tools["tools"].([]any) {
		names = append(names, tool.(map[string]any)["name"].(string))
	}
	sort.Strings(names)
	want := []string{"check_injury_conflict", "compose_coach_tip", "describe_rpe", "search_exercises"}
	if len(names) != len(want) {
		t.Fatalf("tools = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("tools[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	resources := rpc(t, srv, `{"jsonrpc":"2.0","id":3,"method":"resources/list"}`)
	uris := map[string]bool{}
	for _, r := range resources["resources"].([]any) {
		uris[r.(map[string]any)["uri"].(string)] = true
	}
	for _, uri := range []string{"coachtip://rpe_scale", "coachtip://tempo_notation"} {
		if !uris[uri] {
			t.Errorf("resource %s not registered", uri)
		}
	}
}
