package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/azdevops-mcp/internal/azdo"
	"github.com/dshills/azdevops-mcp/internal/credentials"
	"github.com/dshills/azdevops-mcp/internal/logging"
)

const (
	// ServerName is the MCP server name
	ServerName = "azdevops-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies. Credentials
// are resolved lazily on the first tool call rather than at startup, so
// the server comes up even before credentials are configured.
type Server struct {
	mcp      *server.MCPServer
	resolver *credentials.Resolver

	// newClient is swapped out by tests to point at a local server.
	newClient func(credentials.Credentials) *azdo.Client
}

// NewServer creates a new MCP server instance with all Azure DevOps
// tools registered. A nil resolver selects the standard environment-then-
// secrets-service resolver.
func NewServer(resolver *credentials.Resolver) *Server {
	if resolver == nil {
		resolver = credentials.NewFromEnv()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		mcp:      mcpServer,
		resolver: resolver,
		newClient: func(creds credentials.Credentials) *azdo.Client {
			return azdo.NewClient(creds)
		},
	}

	s.registerTools()
	return s
}

// client resolves the org/PAT pair and builds a REST client for it.
// Resolution is memoized by the resolver, so only the first call per
// process queries the credential sources.
func (s *Server) client(ctx context.Context) (*azdo.Client, error) {
	creds, err := s.resolver.OrgAndPAT(ctx)
	if err != nil {
		return nil, err
	}
	return s.newClient(creds), nil
}

// ServeStdio starts the MCP server on stdio and blocks until the client
// disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	logging.Logger.Infof("%s v%s listening on stdio", ServerName, ServerVersion)
	return server.ServeStdio(s.mcp)
}

// ServeHTTP starts the MCP server on an SSE endpoint and blocks until the
// context is cancelled or the listener fails.
func (s *Server) ServeHTTP(ctx context.Context, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	sseServer := server.NewSSEServer(
		s.mcp,
		server.WithBaseURL(fmt.Sprintf("http://%s", addr)),
		server.WithKeepAlive(true),
	)

	errChan := make(chan error, 1)
	go func() {
		logging.Logger.Infof("%s v%s listening on http://%s", ServerName, ServerVersion, addr)
		errChan <- sseServer.Start(addr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return sseServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Core
	s.mcp.AddTool(listProjectsTool(), s.handleListProjects)
	s.mcp.AddTool(getProjectTool(), s.handleGetProject)
	s.mcp.AddTool(listTeamsTool(), s.handleListTeams)
	s.mcp.AddTool(searchIdentitiesTool(), s.handleSearchIdentities)

	// Work items
	s.mcp.AddTool(getWorkItemTool(), s.handleGetWorkItem)
	s.mcp.AddTool(createWorkItemTool(), s.handleCreateWorkItem)
	s.mcp.AddTool(updateWorkItemTool(), s.handleUpdateWorkItem)
	s.mcp.AddTool(runWorkItemQueryTool(), s.handleRunWorkItemQuery)
	s.mcp.AddTool(myWorkItemsTool(), s.handleMyWorkItems)
	s.mcp.AddTool(addWorkItemCommentTool(), s.handleAddWorkItemComment)

	// Repositories
	s.mcp.AddTool(listRepositoriesTool(), s.handleListRepositories)
	s.mcp.AddTool(listBranchesTool(), s.handleListBranches)
	s.mcp.AddTool(listPullRequestsTool(), s.handleListPullRequests)
	s.mcp.AddTool(createPullRequestTool(), s.handleCreatePullRequest)

	// Pipelines
	s.mcp.AddTool(listBuildDefinitionsTool(), s.handleListBuildDefinitions)
	s.mcp.AddTool(listBuildsTool(), s.handleListBuilds)
	s.mcp.AddTool(queueBuildTool(), s.handleQueueBuild)
	s.mcp.AddTool(runPipelineTool(), s.handleRunPipeline)

	// Wikis
	s.mcp.AddTool(listWikisTool(), s.handleListWikis)
	s.mcp.AddTool(getWikiPageTool(), s.handleGetWikiPage)

	// Search
	s.mcp.AddTool(searchCodeTool(), s.handleSearchCode)
}
