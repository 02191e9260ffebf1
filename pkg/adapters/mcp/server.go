package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/concierge"
	"github.com/aretw0/concierge/internal/logging"
	"github.com/aretw0/concierge/pkg/domain"
	"github.com/aretw0/concierge/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
)

// CatalogURI is the resource that exposes the loaded catalog.
const CatalogURI = "concierge://catalog"

// SendMessageArgs are the arguments of the send_message tool.
type SendMessageArgs struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// TurnResponse aligns with the HTTP chat response and is the output of send_message.
type TurnResponse struct {
	Response string                `json:"response" jsonschema_description:"The assistant reply"`
	Session  domain.SessionState   `json:"session" jsonschema_description:"The session state produced by the turn"`
	Booking  *domain.BookingRecord `json:"booking,omitempty" jsonschema_description:"Set when the turn confirmed a booking"`
}

// ListArgs filter list_accommodations. Both are optional.
type ListArgs struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// ListResponse is the output of list_accommodations.
type ListResponse struct {
	Currency       string                 `json:"currency"`
	Accommodations []domain.Accommodation `json:"accommodations"`
}

// UserArgs identify the session a tool acts on.
type UserArgs struct {
	UserID string `json:"user_id"`
}

// Server wraps the conversation engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Conversation
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Conversation, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("concierge-mcp", strings.TrimSpace(concierge.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))
	withCORS := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	mux := http.NewServeMux()
	mux.Handle("/sse", withCORS.Handler(sseServer.SSEHandler()))
	mux.Handle("/message", withCORS.Handler(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: send_message
	s.mcpServer.AddTool(mcp.NewTool("send_message",
		mcp.WithDescription("Send one chat message on behalf of a user and get the assistant reply. Sessions persist per user between calls."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Stable identifier of the chatting user")),
		mcp.WithString("message", mcp.Required(), mcp.Description("The user message, in German")),
		mcp.WithOutputSchema[TurnResponse](),
	), mcp.NewStructuredToolHandler(s.handleSendMessage))

	// TOOL: list_accommodations
	s.mcpServer.AddTool(mcp.NewTool("list_accommodations",
		mcp.WithDescription("List the bookable accommodations, optionally filtered by country and city."),
		mcp.WithString("country", mcp.Description("Country filter (optional)")),
		mcp.WithString("city", mcp.Description("City filter (optional)")),
		mcp.WithOutputSchema[ListResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))

	// TOOL: get_session
	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Show the stored session of a user."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
	), s.handleGetSession)

	// TOOL: reset_session
	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Discard the stored session of a user so the next message starts over."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
	), s.handleReset)
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest, args SendMessageArgs) (TurnResponse, error) {
	if strings.TrimSpace(args.UserID) == "" {
		return TurnResponse{}, errors.New("user_id is required")
	}

	turn, err := s.engine.ProcessTurn(ctx, args.UserID, args.Message)
	if err != nil {
		s.logger.Error("MCP send_message failed", "user_id", args.UserID, "err", err)
		return TurnResponse{}, fmt.Errorf("send_message failed: %w", err)
	}
	return TurnResponse{
		Response: turn.Response,
		Session:  turn.Session,
		Booking:  turn.Booking,
	}, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args ListArgs) (ListResponse, error) {
	c := s.engine.Catalog()

	var hotels []domain.Accommodation
	switch {
	case args.City != "":
		hotels = c.InCity(args.City, args.Country)
	case args.Country != "":
		hotels = c.InCountry(args.Country)
	default:
		hotels = c.Accommodations()
	}
	if hotels == nil {
		hotels = []domain.Accommodation{}
	}
	return ListResponse{Currency: c.Currency(), Accommodations: hotels}, nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess, err := s.engine.Session(ctx, userID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no session for %q", userID)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(sess)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.engine.Reset(ctx, userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("session of %s reset", userID)), nil
}

// catalogDocument is the JSON shape of the catalog resource.
type catalogDocument struct {
	Currency       string                 `json:"currency"`
	Accommodations []domain.Accommodation `json:"accommodations"`
	Services       []string               `json:"services"`
}

func (s *Server) registerResources() {
	// EXPOSE: concierge://catalog
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Accommodation Catalog",
		mcp.WithResourceDescription("Every bookable accommodation with price and services"),
		mcp.WithMIMEType("application/json"),
	), s.readCatalog)
}

func (s *Server) readCatalog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	c := s.engine.Catalog()
	jsonBytes, err := json.Marshal(catalogDocument{
		Currency:       c.Currency(),
		Accommodations: c.Accommodations(),
		Services:       c.Services(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
