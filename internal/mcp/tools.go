package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/azdevops-mcp/internal/azdo"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
)

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func missingParam(param string) error {
	return newMCPError(ErrorCodeInvalidParams, param+" parameter is required", map[string]interface{}{
		"param":  param,
		"reason": "missing or empty",
	})
}

// ==================== Core tools ====================

func (s *Server) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	stateFilter := getStringDefault(args, "state_filter", "wellFormed")
	top := getIntDefault(args, "top", 0)
	skip := getIntDefault(args, "skip", 0)

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.ListProjects(ctx, stateFilter, top, skip)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleGetProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.GetProject(ctx, project)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleListTeams(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	top := getIntDefault(args, "top", 0)
	skip := getIntDefault(args, "skip", 0)

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.ListTeams(ctx, project, top, skip)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleSearchIdentities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	searchFilter, ok := args["search_filter"].(string)
	if !ok || searchFilter == "" {
		return nil, missingParam("search_filter")
	}
	filterValue, ok := args["filter_value"].(string)
	if !ok || filterValue == "" {
		return nil, missingParam("filter_value")
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.SearchIdentities(ctx, searchFilter, filterValue)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// ==================== Work item tools ====================

func (s *Server) handleGetWorkItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	workItemID, ok := getInt(args, "work_item_id")
	if !ok {
		return nil, missingParam("work_item_id")
	}
	expand := getStringDefault(args, "expand", "")

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.GetWorkItem(ctx, project, workItemID, expand)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleCreateWorkItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	workItemType, ok := args["work_item_type"].(string)
	if !ok || workItemType == "" {
		return nil, missingParam("work_item_type")
	}
	title, ok := args["title"].(string)
	if !ok || title == "" {
		return nil, missingParam("title")
	}

	document := []azdo.PatchOp{azdo.AddField("System.Title", title)}
	if v := getStringDefault(args, "description", ""); v != "" {
		document = append(document, azdo.AddField("System.Description", v))
	}
	if v := getStringDefault(args, "assigned_to", ""); v != "" {
		document = append(document, azdo.AddField("System.AssignedTo", v))
	}
	if v := getStringDefault(args, "area_path", ""); v != "" {
		document = append(document, azdo.AddField("System.AreaPath", v))
	}
	if v := getStringDefault(args, "iteration_path", ""); v != "" {
		document = append(document, azdo.AddField("System.IterationPath", v))
	}
	if v := getStringDefault(args, "state", ""); v != "" {
		document = append(document, azdo.AddField("System.State", v))
	}
	if v := getIntDefault(args, "priority", 0); v != 0 {
		document = append(document, azdo.AddField("Microsoft.VSTS.Common.Priority", v))
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.CreateWorkItem(ctx, project, workItemType, document)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleUpdateWorkItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	workItemID, ok := getInt(args, "work_item_id")
	if !ok {
		return nil, missingParam("work_item_id")
	}

	var document []azdo.PatchOp
	if v := getStringDefault(args, "title", ""); v != "" {
		document = append(document, azdo.AddField("System.Title", v))
	}
	if v := getStringDefault(args, "description", ""); v != "" {
		document = append(document, azdo.AddField("System.Description", v))
	}
	if v := getStringDefault(args, "assigned_to", ""); v != "" {
		document = append(document, azdo.AddField("System.AssignedTo", v))
	}
	if v := getStringDefault(args, "state", ""); v != "" {
		document = append(document, azdo.AddField("System.State", v))
	}
	if v := getIntDefault(args, "priority", 0); v != 0 {
		document = append(document, azdo.AddField("Microsoft.VSTS.Common.Priority", v))
	}

	if len(document) == 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "no fields provided to update", nil)
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.UpdateWorkItem(ctx, project, workItemID, document)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleRunWorkItemQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, missingParam("query")
	}
	top := getIntDefault(args, "top", 0)

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.RunWIQL(ctx, project, query, top)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleMyWorkItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	includeCompleted := getBoolDefault(args, "include_completed", false)
	top := getIntDefault(args, "top", 50)

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.RunWIQL(ctx, project, myWorkItemsQuery(includeCompleted), top)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// myWorkItemsQuery builds the WIQL for the current user's open (or all)
// work items, newest change first.
func myWorkItemsQuery(includeCompleted bool) string {
	stateFilter := ""
	if !includeCompleted {
		stateFilter = " AND [System.State] <> 'Closed' AND [System.State] <> 'Done' AND [System.State] <> 'Removed'"
	}
	return "SELECT [System.Id], [System.Title], [System.State], [System.WorkItemType]" +
		" FROM WorkItems WHERE [System.AssignedTo] = @Me" + stateFilter +
		" ORDER BY [System.ChangedDate] DESC"
}

func (s *Server) handleAddWorkItemComment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	workItemID, ok := getInt(args, "work_item_id")
	if !ok {
		return nil, missingParam("work_item_id")
	}
	text, ok := args["text"].(string)
	if !ok || text == "" {
		return nil, missingParam("text")
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.AddWorkItemComment(ctx, project, workItemID, text)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// ==================== Repository tools ====================

func (s *Server) handleListRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.ListRepositories(ctx, project)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleListBranches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	repositoryID, ok := args["repository_id"].(string)
	if !ok || repositoryID == "" {
		return nil, missingParam("repository_id")
	}
	filterContains := getStringDefault(args, "filter_contains", "")
	top := getIntDefault(args, "top", 0)

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.ListBranches(ctx, project, repositoryID, filterContains, top)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleListPullRequests(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	repositoryID, ok := args["repository_id"].(string)
	if !ok || repositoryID == "" {
		return nil, missingParam("repository_id")
	}
	status := getStringDefault(args, "status", "Active")
	top := getIntDefault(args, "top", 50)

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.ListPullRequests(ctx, project, repositoryID, status, top)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleCreatePullRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	repositoryID, ok := args["repository_id"].(string)
	if !ok || repositoryID == "" {
		return nil, missingParam("repository_id")
	}
	sourceRefName, ok := args["source_ref_name"].(string)
	if !ok || sourceRefName == "" {
		return nil, missingParam("source_ref_name")
	}
	targetRefName, ok := args["target_ref_name"].(string)
	if !ok || targetRefName == "" {
		return nil, missingParam("target_ref_name")
	}
	title, ok := args["title"].(string)
	if !ok || title == "" {
		return nil, missingParam("title")
	}

	spec := azdo.PullRequestSpec{
		SourceRefName: sourceRefName,
		TargetRefName: targetRefName,
		Title:         title,
		Description:   getStringDefault(args, "description", ""),
		IsDraft:       getBoolDefault(args, "is_draft", false),
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.CreatePullRequest(ctx, project, repositoryID, spec)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// ==================== Pipeline tools ====================

func (s *Server) handleListBuildDefinitions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	name := getStringDefault(args, "name", "")
	top := getIntDefault(args, "top", 50)

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.ListBuildDefinitions(ctx, project, name, top)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleListBuilds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	status := getStringDefault(args, "status", "")
	result := getStringDefault(args, "result", "")
	top := getIntDefault(args, "top", 50)

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.ListBuilds(ctx, project, status, result, top)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleQueueBuild(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	definitionID, ok := getInt(args, "definition_id")
	if !ok {
		return nil, missingParam("definition_id")
	}
	sourceBranch := getStringDefault(args, "source_branch", "")

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.QueueBuild(ctx, project, definitionID, sourceBranch)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleRunPipeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	pipelineID, ok := getInt(args, "pipeline_id")
	if !ok {
		return nil, missingParam("pipeline_id")
	}
	branch := getStringDefault(args, "branch", "")

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.RunPipeline(ctx, project, pipelineID, branch)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// ==================== Wiki tools ====================

func (s *Server) handleListWikis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project := getStringDefault(args, "project", "")

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.ListWikis(ctx, project)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

func (s *Server) handleGetWikiPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	project, ok := args["project"].(string)
	if !ok || project == "" {
		return nil, missingParam("project")
	}
	wikiIdentifier, ok := args["wiki_identifier"].(string)
	if !ok || wikiIdentifier == "" {
		return nil, missingParam("wiki_identifier")
	}
	pagePath, ok := args["path"].(string)
	if !ok || pagePath == "" {
		return nil, missingParam("path")
	}
	includeContent := getBoolDefault(args, "include_content", true)

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.GetWikiPage(ctx, project, wikiIdentifier, pagePath, includeContent)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// ==================== Search tools ====================

func (s *Server) handleSearchCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	searchText, ok := args["search_text"].(string)
	if !ok || strings.TrimSpace(searchText) == "" {
		return nil, missingParam("search_text")
	}
	project := getStringDefault(args, "project", "")
	repository := getStringDefault(args, "repository", "")
	top := getIntDefault(args, "top", 25)

	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.SearchCode(ctx, searchText, project, repository, top)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// Helper functions

// formatJSON formats an API result as indented JSON
func formatJSON(data azdo.Result) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getInt extracts a required integer parameter. JSON numbers arrive as
// float64 through the MCP transport.
func getInt(args map[string]interface{}, key string) (int, bool) {
	if val, ok := args[key].(float64); ok {
		return int(val), true
	}
	if val, ok := args[key].(int); ok {
		return val, true
	}
	return 0, false
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
