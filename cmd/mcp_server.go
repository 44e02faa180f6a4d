package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/sap"
	"github.com/mj1618/sapgui-cli/internal/scripting"
)

// mcpServer wraps the MCP server with the attached scripting engine and the
// tree cache. The engine is single-threaded, so every handler serializes on
// engineMu.
type mcpServer struct {
	engine   scripting.Engine
	cache    *mcpTreeCache
	engineMu sync.Mutex
	mcp      *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// newMCPServer attaches to the scripting engine and registers all tools.
func newMCPServer(mcpCfg MCPConfig) (*mcpServer, error) {
	engine, err := scripting.Attach()
	if err != nil {
		return nil, err
	}

	s := &mcpServer{
		engine: engine,
		cache:  newMCPTreeCache(mcpCfg.CacheTTL),
	}

	s.mcp = mcpserver.NewMCPServer(
		"sapgui-cli",
		"1.0.0",
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(mcpCfg MCPConfig) error {
	switch mcpCfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", mcpCfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", mcpCfg.Transport)
	}
}

// close releases the engine handle.
func (s *mcpServer) close() {
	if s.engine != nil {
		s.engine.Close()
		s.engine = nil
	}
}

func (s *mcpServer) registerTools() {
	// sessions
	s.mcp.AddTool(
		mcp.NewTool("sessions",
			mcp.WithDescription("List open connections and their session identifiers"),
			mcp.WithString("server", mcp.Description("Limit to the connection with this description")),
		),
		s.handleSessions,
	)

	// find
	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Search the session's widget tree for identifiers containing a fragment"),
			mcp.WithString("fragment", mcp.Description("Identifier fragment (substring match)"), mcp.Required()),
			mcp.WithString("server", mcp.Description("Connection description to target")),
			mcp.WithNumber("session", mcp.Description("Session index on the connection")),
		),
		s.handleFind,
	)

	// tree
	s.mcp.AddTool(
		mcp.NewTool("tree",
			mcp.WithDescription("Dump the session's widget tree as a flat list with id, type, text, and path"),
			mcp.WithString("server", mcp.Description("Connection description to target")),
			mcp.WithNumber("session", mcp.Description("Session index on the connection")),
			mcp.WithString("types", mcp.Description("Comma-separated type filter, aliases allowed (e.g. \"txt,btn\")")),
			mcp.WithString("text", mcp.Description("Filter widgets by id/text substring")),
		),
		s.handleTree,
	)

	// transaction
	s.mcp.AddTool(
		mcp.NewTool("transaction",
			mcp.WithDescription("Open a transaction by code (closing whatever is open first), or close the current one"),
			mcp.WithString("code", mcp.Description("Transaction code to open (e.g. VA01)")),
			mcp.WithBoolean("close", mcp.Description("Close the current transaction instead")),
			mcp.WithString("server", mcp.Description("Connection description to target")),
			mcp.WithNumber("session", mcp.Description("Session index on the connection")),
		),
		s.handleTransaction,
	)

	// fill
	s.mcp.AddTool(
		mcp.NewTool("fill",
			mcp.WithDescription("Set multiple input fields in one call. Each id must resolve to exactly one widget."),
			mcp.WithArray("fields", mcp.Description("Array of {id, value} objects"), mcp.Required()),
			mcp.WithString("server", mcp.Description("Connection description to target")),
			mcp.WithNumber("session", mcp.Description("Session index on the connection")),
		),
		s.handleFill,
	)

	// set
	s.mcp.AddTool(
		mcp.NewTool("set",
			mcp.WithDescription("Set one input field identified by a fragment"),
			mcp.WithString("id", mcp.Description("Field identifier fragment"), mcp.Required()),
			mcp.WithString("value", mcp.Description("Value to set")),
			mcp.WithString("server", mcp.Description("Connection description to target")),
			mcp.WithNumber("session", mcp.Description("Session index on the connection")),
		),
		s.handleSet,
	)

	// key
	s.mcp.AddTool(
		mcp.NewTool("key",
			mcp.WithDescription("Send virtual key codes to a session window (0 = Enter)"),
			mcp.WithArray("keys", mcp.Description("Virtual key codes, sent in order"), mcp.Required()),
			mcp.WithNumber("window", mcp.Description("Window index (default 0)")),
			mcp.WithString("server", mcp.Description("Connection description to target")),
			mcp.WithNumber("session", mcp.Description("Session index on the connection")),
		),
		s.handleKey,
	)

	// table
	s.mcp.AddTool(
		mcp.NewTool("table",
			mcp.WithDescription("Extract the 2-D contents of a table widget (fixed table control or grid view)"),
			mcp.WithString("id", mcp.Description("Table widget identifier fragment"), mcp.Required()),
			mcp.WithString("server", mcp.Description("Connection description to target")),
			mcp.WithNumber("session", mcp.Description("Session index on the connection")),
		),
		s.handleTable,
	)

	// wait
	s.mcp.AddTool(
		mcp.NewTool("wait",
			mcp.WithDescription("Wait for a widget matching a fragment to appear or disappear"),
			mcp.WithString("fragment", mcp.Description("Identifier fragment to wait for"), mcp.Required()),
			mcp.WithBoolean("gone", mcp.Description("Wait until no widget matches")),
			mcp.WithNumber("timeout", mcp.Description("Max seconds to wait (default: 30)")),
			mcp.WithNumber("interval", mcp.Description("Polling interval in ms (default: 500)")),
			mcp.WithString("server", mcp.Description("Connection description to target")),
			mcp.WithNumber("session", mcp.Description("Session index on the connection")),
		),
		s.handleWait,
	)

	// do (batch)
	s.mcp.AddTool(
		mcp.NewTool("do",
			mcp.WithDescription("Execute multiple steps in a batch against one session. Supports: transaction, fill, set, key, find, table, wait, sleep"),
			mcp.WithArray("steps", mcp.Description("Array of {action: {params}} objects"), mcp.Required()),
			mcp.WithBoolean("stop-on-error", mcp.Description("Stop on first error (default: true)")),
			mcp.WithString("server", mcp.Description("Connection description to target")),
			mcp.WithNumber("session", mcp.Description("Session index on the connection")),
		),
		s.handleDo,
	)
}

// resultToText serializes a StepResult to YAML for an MCP response.
func resultToText(result StepResult) string {
	b, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Sprintf("ok: %v\naction: %s\nerror: %s", result.OK, result.Action, result.Error)
	}
	return string(b)
}

// targetFromParams reads the session-targeting parameters.
func targetFromParams(params map[string]interface{}) (string, int) {
	server := serverOrConfig(stringParam(params, "server", ""))
	index := intParam(params, "session", 0)
	return server, index
}

// session resolves the target session on the server's long-lived engine.
// Callers must hold engineMu.
func (s *mcpServer) session(params map[string]interface{}) (*sap.Session, mcpCacheKey, error) {
	server, index := targetFromParams(params)
	sess, err := sessionOn(s.engine, server, index)
	if err != nil {
		return nil, mcpCacheKey{}, err
	}
	return sess, mcpCacheKey{Server: server, Session: index}, nil
}

// writeToolHandler wraps a write-action step: resolves the session, executes,
// and invalidates that session's tree cache.
func (s *mcpServer) writeToolHandler(request mcp.CallToolRequest, action string) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	sess, key, err := s.session(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := executeStep(sess, action, params)
	if err != nil {
		result.OK = false
		result.Error = err.Error()
		s.cache.invalidateSession(key)
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	result.OK = true

	s.cache.invalidateSession(key)
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *mcpServer) handleSessions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	server := stringParam(params, "server", "")

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	conns, err := s.engine.Connections()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries := []sessionsConnection{}
	for _, conn := range conns {
		desc, err := conn.Description()
		if err != nil {
			continue
		}
		if server != "" && desc != server {
			continue
		}
		children, err := conn.Children()
		if err != nil {
			continue
		}
		entry := sessionsConnection{Server: desc, Sessions: []string{}}
		for _, child := range children {
			id, err := child.ID()
			if err != nil {
				continue
			}
			entry.Sessions = append(entry.Sessions, id)
		}
		entries = append(entries, entry)
	}

	b, _ := yaml.Marshal(entries)
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleFind(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	fragment := stringParam(params, "fragment", "")
	if fragment == "" {
		return mcp.NewToolResultError("fragment parameter is required"), nil
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	sess, key, err := s.session(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches, err := s.cachedFind(sess, key, fragment)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if matches == nil {
		matches = []string{}
	}

	b, _ := yaml.Marshal(matches)
	return mcp.NewToolResultText(string(b)), nil
}

// cachedFind searches the cached tree snapshot when available, falling back
// to the session's own lookup (which handles live traversal) when the
// snapshot cannot be captured.
func (s *mcpServer) cachedFind(sess *sap.Session, key mcpCacheKey, fragment string) ([]string, error) {
	root, err := s.cache.tree(key, sess.Tree)
	if err != nil {
		return sess.FindElements(fragment)
	}
	return model.SearchTree(*root, model.NormalizeID(fragment)), nil
}

func (s *mcpServer) handleTree(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	typesStr := stringParam(params, "types", "")
	text := stringParam(params, "text", "")

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	sess, key, err := s.session(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	root, err := s.cache.tree(key, sess.Tree)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	widgets := model.FlattenTree(*root)
	if typesStr != "" {
		widgets = model.FilterByType(widgets, model.ExpandTypes(splitCSV(typesStr)))
	}
	if text != "" {
		widgets = model.FilterByText(widgets, text)
	}
	if widgets == nil {
		widgets = []model.FlatWidget{}
	}

	b, _ := yaml.Marshal(widgets)
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleTransaction(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.writeToolHandler(request, "transaction")
}

func (s *mcpServer) handleFill(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.writeToolHandler(request, "fill")
}

func (s *mcpServer) handleSet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.writeToolHandler(request, "set")
}

func (s *mcpServer) handleKey(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.writeToolHandler(request, "key")
}

func (s *mcpServer) handleTable(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	sess, _, err := s.session(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := executeStep(sess, "table", params)
	if err != nil {
		result.OK = false
		result.Error = err.Error()
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	result.OK = true
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *mcpServer) handleWait(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	sess, _, err := s.session(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := executeStep(sess, "wait", params)
	if err != nil {
		result.OK = false
		result.Error = err.Error()
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	result.OK = true
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *mcpServer) handleDo(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	stopOnError := boolParam(params, "stop-on-error", true)

	stepsRaw, ok := params["steps"]
	if !ok {
		return mcp.NewToolResultError("steps parameter is required"), nil
	}
	arr, ok := stepsRaw.([]interface{})
	if !ok {
		return mcp.NewToolResultError("steps must be an array"), nil
	}

	rawSteps := make([]map[string]map[string]interface{}, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("each step must be an object"), nil
		}
		step := make(map[string]map[string]interface{}, len(m))
		for action, raw := range m {
			stepParams, ok := raw.(map[string]interface{})
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("step %q parameters must be an object", action)), nil
			}
			step[action] = stepParams
		}
		rawSteps = append(rawSteps, step)
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	sess, key, err := s.session(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, completed, lastErr := executeSteps(sess, rawSteps, stopOnError)
	s.cache.invalidateSession(key)

	doResult := DoResult{
		OK:        lastErr == "",
		Action:    "do",
		Steps:     len(rawSteps),
		Completed: completed,
		Error:     lastErr,
		Results:   results,
	}
	b, _ := yaml.Marshal(doResult)
	if !doResult.OK {
		return mcp.NewToolResultError(string(b)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
