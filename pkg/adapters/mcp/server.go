package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/internal/logging"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/dsl"
	"github.com/aretw0/sail/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs.
const (
	FunctionsURI = "sail://functions"
	ExamplesURI  = "sail://examples"
)

// EvaluateResponse aligns with the HTTP frame and provides a unified structure across adapters.
type EvaluateResponse struct {
	Phase string                  `json:"phase" jsonschema_description:"rendering or showing_error"`
	AST   *domain.Node            `json:"ast,omitempty" jsonschema_description:"The component tree produced by the document"`
	Error *domain.EvaluationError `json:"error,omitempty" jsonschema_description:"Why the document could not be evaluated"`
	HTML  string                  `json:"html" jsonschema_description:"The rendered form"`
	State map[string]string       `json:"state" jsonschema_description:"Field values after the cycle"`
	Dump  string                  `json:"dump" jsonschema_description:"The structure panel text"`
}

// Server exposes the playground evaluator as an MCP Server.
// Every call runs on a fresh playground; nothing is kept between calls.
type Server struct {
	library   ports.ExampleLibrary
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLibrary exposes snippets as tools and resources.
func WithLibrary(lib ports.ExampleLibrary) Option {
	return func(s *Server) {
		s.library = lib
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("sail-mcp", strings.TrimSpace(sail.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: evaluate_sail
	evaluateTool := mcp.NewTool("evaluate_sail",
		mcp.WithDescription("Evaluate a SAIL document and return its component tree, rendered HTML and dump."),
		mcp.WithString("source", mcp.Required(), mcp.Description("The SAIL document text")),
		mcp.WithString("state", mcp.Description("JSON object of field values visible as state.* (optional)")),
		mcp.WithString("mode", mcp.Description("Dump mode: history (default) or latest")),
		mcp.WithOutputSchema[EvaluateResponse](),
	)
	s.mcpServer.AddTool(evaluateTool, mcp.NewStructuredToolHandler(s.handleEvaluate))

	// TOOL: input_field
	inputTool := mcp.NewTool("input_field",
		mcp.WithDescription("Simulate typing into a bound field and return the re-rendered result."),
		mcp.WithString("source", mcp.Required(), mcp.Description("The SAIL document text")),
		mcp.WithString("key", mcp.Required(), mcp.Description("The saveInto key of the field")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The new value")),
		mcp.WithString("state", mcp.Description("JSON object of field values before the input")),
		mcp.WithString("mode", mcp.Description("Dump mode: history (default) or latest")),
		mcp.WithOutputSchema[EvaluateResponse](),
	)
	s.mcpServer.AddTool(inputTool, mcp.NewStructuredToolHandler(s.handleInput))

	// TOOL: list_functions
	s.mcpServer.AddTool(mcp.NewTool("list_functions",
		mcp.WithDescription("List the functions a SAIL document can call."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(dsl.Catalog)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	if s.library == nil {
		return
	}

	// TOOL: get_example
	s.mcpServer.AddTool(mcp.NewTool("get_example",
		mcp.WithDescription("Fetch a snippet from the example library."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Example ID")),
	), s.handleGetExample)
}

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EvaluateResponse, error) {
	pg, mode, err := s.open(ctx, args)
	if err != nil {
		return EvaluateResponse{}, err
	}
	return respond(pg, mode), nil
}

func (s *Server) handleInput(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EvaluateResponse, error) {
	pg, mode, err := s.open(ctx, args)
	if err != nil {
		return EvaluateResponse{}, err
	}
	key, _ := args["key"].(string)
	value, _ := args["value"].(string)
	if _, err := pg.Input(ctx, key, value); err != nil {
		return EvaluateResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	return respond(pg, mode), nil
}

func (s *Server) handleGetExample(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ex, err := s.library.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get example failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(ex)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// open builds a throwaway playground from the tool arguments.
func (s *Server) open(ctx context.Context, args map[string]interface{}) (*sail.Playground, sail.DumpMode, error) {
	source, _ := args["source"].(string)
	if strings.TrimSpace(source) == "" {
		return nil, "", fmt.Errorf("source is required")
	}

	modeStr, _ := args["mode"].(string)
	mode, err := sail.ParseDumpMode(modeStr)
	if err != nil {
		return nil, "", err
	}

	var state map[string]string
	if stateStr, ok := args["state"].(string); ok && stateStr != "" {
		if err := json.Unmarshal([]byte(stateStr), &state); err != nil {
			return nil, "", fmt.Errorf("invalid state: %w", err)
		}
	}

	pg := sail.New(ctx, source,
		sail.WithLogger(s.logger),
		sail.WithInitialState(state),
		sail.WithDumpMode(mode),
	)
	return pg, mode, nil
}

func respond(pg *sail.Playground, mode sail.DumpMode) EvaluateResponse {
	f := pg.Current()
	return EvaluateResponse{
		Phase: string(f.Phase),
		AST:   f.Root,
		Error: f.Err,
		HTML:  f.HTML(),
		State: f.State,
		Dump:  pg.Dump(mode),
	}
}

func (s *Server) registerResources() {
	// EXPOSE: sail://functions
	s.mcpServer.AddResource(mcp.NewResource(FunctionsURI, "SAIL Function Reference",
		mcp.WithMIMEType("text/markdown"),
	), s.readFunctions)

	if s.library == nil {
		return
	}

	// EXPOSE: sail://examples
	s.mcpServer.AddResource(mcp.NewResource(ExamplesURI, "Example Library",
		mcp.WithMIMEType("application/json"),
	), s.readExamples)
}

func (s *Server) readFunctions(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      FunctionsURI,
			MIMEType: "text/markdown",
			Text:     dsl.Markdown(),
		},
	}, nil
}

func (s *Server) readExamples(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	examples, err := s.library.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	jsonBytes, _ := json.Marshal(examples)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ExamplesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
