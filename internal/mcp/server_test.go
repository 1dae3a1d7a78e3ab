package mcp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/azdevops-mcp/internal/azdo"
	"github.com/dshills/azdevops-mcp/internal/credentials"
)

// staticSource always returns the same credential pair.
type staticSource struct {
	values map[string]string
}

func (s staticSource) Resolve(_ context.Context, key string) (string, bool, error) {
	value, ok := s.values[key]
	return value, ok, nil
}

func testResolver() *credentials.Resolver {
	return credentials.NewResolver(staticSource{values: map[string]string{
		credentials.KeyOrg: "contoso",
		credentials.KeyPAT: "abc123",
	}})
}

// newTestServer wires the MCP server to a local HTTP backend standing in
// for Azure DevOps.
func newTestServer(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	s := NewServer(testResolver())
	s.newClient = func(creds credentials.Credentials) *azdo.Client {
		return azdo.NewClient(creds, azdo.WithBaseURLs(backend.URL, backend.URL, backend.URL))
	}
	return s
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var request mcp.CallToolRequest
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestNewServer(t *testing.T) {
	t.Run("with explicit resolver", func(t *testing.T) {
		s := NewServer(testResolver())
		require.NotNil(t, s)
		assert.NotNil(t, s.mcp)
		assert.NotNil(t, s.resolver)
		assert.NotNil(t, s.newClient)
	})

	t.Run("nil resolver selects the standard one", func(t *testing.T) {
		s := NewServer(nil)
		require.NotNil(t, s)
		assert.NotNil(t, s.resolver)
	})
}

func TestHandlerParamValidation(t *testing.T) {
	s := NewServer(testResolver())
	ctx := context.Background()

	cases := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]interface{}
		param   string
	}{
		{"get_project missing project", s.handleGetProject, map[string]interface{}{}, "project"},
		{"list_teams missing project", s.handleListTeams, map[string]interface{}{}, "project"},
		{"search_identities missing filter value", s.handleSearchIdentities,
			map[string]interface{}{"search_filter": "General"}, "filter_value"},
		{"get_work_item missing id", s.handleGetWorkItem,
			map[string]interface{}{"project": "P"}, "work_item_id"},
		{"create_work_item missing title", s.handleCreateWorkItem,
			map[string]interface{}{"project": "P", "work_item_type": "Bug"}, "title"},
		{"add_work_item_comment missing text", s.handleAddWorkItemComment,
			map[string]interface{}{"project": "P", "work_item_id": float64(1)}, "text"},
		{"run_work_item_query missing query", s.handleRunWorkItemQuery,
			map[string]interface{}{"project": "P"}, "query"},
		{"list_branches missing repository", s.handleListBranches,
			map[string]interface{}{"project": "P"}, "repository_id"},
		{"create_pull_request missing source ref", s.handleCreatePullRequest,
			map[string]interface{}{"project": "P", "repository_id": "r"}, "source_ref_name"},
		{"queue_build missing definition", s.handleQueueBuild,
			map[string]interface{}{"project": "P"}, "definition_id"},
		{"run_pipeline missing id", s.handleRunPipeline,
			map[string]interface{}{"project": "P"}, "pipeline_id"},
		{"get_wiki_page missing path", s.handleGetWikiPage,
			map[string]interface{}{"project": "P", "wiki_identifier": "w"}, "path"},
		{"search_code missing text", s.handleSearchCode, map[string]interface{}{}, "search_text"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.handler(ctx, callRequest(tc.args))
			assert.Nil(t, result)

			var mcpErr *MCPError
			require.ErrorAs(t, err, &mcpErr)
			assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
			assert.Contains(t, mcpErr.Message, tc.param)
		})
	}
}

func TestUpdateWorkItemRequiresFields(t *testing.T) {
	s := NewServer(testResolver())

	_, err := s.handleUpdateWorkItem(context.Background(), callRequest(map[string]interface{}{
		"project":      "P",
		"work_item_id": float64(42),
	}))

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	assert.Contains(t, mcpErr.Message, "no fields provided to update")
}

func TestHandlersReturnAPIResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("list projects", func(t *testing.T) {
		s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/_apis/projects", r.URL.Path)
			_, _ = w.Write([]byte(`{"count":1,"value":[{"name":"MyProject"}]}`))
		})

		result, err := s.handleListProjects(ctx, callRequest(map[string]interface{}{}))
		require.NoError(t, err)
		assert.Contains(t, resultText(t, result), "MyProject")
	})

	t.Run("my_work_items composes WIQL", func(t *testing.T) {
		var gotBody string
		s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			gotBody = string(raw)
			_, _ = w.Write([]byte(`{"workItems":[]}`))
		})

		_, err := s.handleMyWorkItems(ctx, callRequest(map[string]interface{}{
			"project": "MyProject",
		}))
		require.NoError(t, err)
		assert.Contains(t, gotBody, "[System.AssignedTo] = @Me")
		assert.Contains(t, gotBody, "[System.State] <> 'Closed'")

		_, err = s.handleMyWorkItems(ctx, callRequest(map[string]interface{}{
			"project":           "MyProject",
			"include_completed": true,
		}))
		require.NoError(t, err)
		assert.NotContains(t, gotBody, "'Closed'")
	})

	t.Run("create_work_item builds a patch document", func(t *testing.T) {
		var gotContentType, gotBody string
		s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			raw, _ := io.ReadAll(r.Body)
			gotBody = string(raw)
			_, _ = w.Write([]byte(`{"id":7}`))
		})

		result, err := s.handleCreateWorkItem(ctx, callRequest(map[string]interface{}{
			"project":        "MyProject",
			"work_item_type": "Bug",
			"title":          "Login broken",
			"assigned_to":    "jane@example.com",
			"priority":       float64(1),
		}))
		require.NoError(t, err)
		assert.Equal(t, "application/json-patch+json", gotContentType)
		assert.Contains(t, gotBody, "/fields/System.Title")
		assert.Contains(t, gotBody, "/fields/System.AssignedTo")
		assert.Contains(t, gotBody, "/fields/Microsoft.VSTS.Common.Priority")
		assert.Contains(t, resultText(t, result), `"id": 7`)
	})

	t.Run("api errors pass through untouched", func(t *testing.T) {
		s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		result, err := s.handleListProjects(ctx, callRequest(map[string]interface{}{}))
		assert.Nil(t, result)

		var authErr *azdo.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.NotContains(t, err.Error(), "abc123")
	})
}

func TestHandlerCredentialErrors(t *testing.T) {
	t.Run("missing credentials name the key only", func(t *testing.T) {
		resolver := credentials.NewResolver(staticSource{values: map[string]string{}})
		s := NewServer(resolver)

		result, err := s.handleListProjects(context.Background(), callRequest(map[string]interface{}{}))
		assert.Nil(t, result)

		var missing *credentials.MissingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, credentials.KeyOrg, missing.Key)
	})

	t.Run("credentials resolve once across tool calls", func(t *testing.T) {
		calls := 0
		resolver := credentials.NewResolver(countingStaticSource{calls: &calls})
		s := newTestServerWithResolver(t, resolver)

		for i := 0; i < 3; i++ {
			_, err := s.handleListProjects(context.Background(), callRequest(map[string]interface{}{}))
			require.NoError(t, err)
		}
		assert.Equal(t, 2, calls, "one lookup per key, memoized afterwards")
	})
}

type countingStaticSource struct {
	calls *int
}

func (s countingStaticSource) Resolve(_ context.Context, key string) (string, bool, error) {
	*s.calls++
	switch key {
	case credentials.KeyOrg:
		return "contoso", true, nil
	case credentials.KeyPAT:
		return "abc123", true, nil
	}
	return "", false, nil
}

func newTestServerWithResolver(t *testing.T, resolver *credentials.Resolver) *Server {
	t.Helper()
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(backend.Close)

	s := NewServer(resolver)
	s.newClient = func(creds credentials.Credentials) *azdo.Client {
		return azdo.NewClient(creds, azdo.WithBaseURLs(backend.URL, backend.URL, backend.URL))
	}
	return s
}

func TestMyWorkItemsQuery(t *testing.T) {
	open := myWorkItemsQuery(false)
	assert.Contains(t, open, "SELECT [System.Id], [System.Title], [System.State], [System.WorkItemType]")
	assert.Contains(t, open, "[System.AssignedTo] = @Me")
	assert.Contains(t, open, "[System.State] <> 'Done'")
	assert.Contains(t, open, "ORDER BY [System.ChangedDate] DESC")

	all := myWorkItemsQuery(true)
	assert.NotContains(t, all, "<>")
}
