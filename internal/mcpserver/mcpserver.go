package mcpserver

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/timelapse/internal/logging"
	"github.com/panbanda/timelapse/internal/service/timeline"
	"github.com/panbanda/timelapse/pkg/config"
)

// Server wraps the MCP server and registers the timeline tools.
//
// One timeline session is kept per repository so metadata and node queries
// answer from the last adopted build.
type Server struct {
	server *mcp.Server
	config *config.Config
	logger *slog.Logger
	extra  []timeline.Option

	mu       sync.Mutex
	sessions map[string]*timeline.Session
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the configuration used for every session.
func WithConfig(cfg *config.Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionOptions passes extra options to every session (for testing).
func WithSessionOptions(opts ...timeline.Option) Option {
	return func(s *Server) {
		s.extra = append(s.extra, opts...)
	}
}

// NewServer creates a new MCP server with all timeline tools registered.
func NewServer(version string, opts ...Option) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "timelapse",
			Version: version,
		},
		nil,
	)

	s := &Server{
		server:   server,
		config:   config.LoadOrDefault(),
		logger:   logging.Discard(),
		sessions: make(map[string]*timeline.Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.RunWithTransport(ctx, &mcp.StdioTransport{})
}

// RunWithTransport serves over the given transport until ctx is done.
func (s *Server) RunWithTransport(ctx context.Context, t mcp.Transport) error {
	defer s.Close()
	return s.server.Run(ctx, t)
}

// Close stops every session.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path, sess := range s.sessions {
		sess.Close()
		delete(s.sessions, path)
	}
}

// session returns the session for repoPath, creating it on first use.
func (s *Server) session(repoPath string) (*timeline.Session, error) {
	if repoPath == "" {
		repoPath = "."
	}
	if abs, err := filepath.Abs(repoPath); err == nil {
		repoPath = abs
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[repoPath]; ok {
		return sess, nil
	}

	opts := append([]timeline.Option{
		timeline.WithConfig(s.config),
		timeline.WithLogger(s.logger.With("repo", repoPath)),
	}, s.extra...)
	sess, err := timeline.New(repoPath, opts...)
	if err != nil {
		return nil, err
	}
	s.sessions[repoPath] = sess
	return sess, nil
}

// registerTools adds the timeline tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_timeline",
		Description: describeBuildTimeline(),
	}, s.handleBuildTimeline)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_date_range",
		Description: describeDateRange(),
	}, s.handleDateRange)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_contributors",
		Description: describeContributors(),
	}, s.handleContributors)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "tree_to_nodes",
		Description: describeTreeToNodes(),
	}, s.handleTreeToNodes)
}
