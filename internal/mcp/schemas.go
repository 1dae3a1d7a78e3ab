package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions mirror the Azure DevOps REST surface each handler
// wraps. Parameter names are snake_case as presented to the assistant.

func listProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects in the Azure DevOps organization"),
		mcp.WithString("state_filter",
			mcp.Description("Filter projects by state: wellFormed, createPending, deleted, all"),
			mcp.DefaultString("wellFormed"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of projects to return"),
		),
		mcp.WithNumber("skip",
			mcp.Description("Number of projects to skip for pagination"),
		),
	)
}

func getProjectTool() mcp.Tool {
	return mcp.NewTool("get_project",
		mcp.WithDescription("Get details of a specific Azure DevOps project"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
	)
}

func listTeamsTool() mcp.Tool {
	return mcp.NewTool("list_teams",
		mcp.WithDescription("List all teams in a project"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of teams to return"),
		),
		mcp.WithNumber("skip",
			mcp.Description("Number of teams to skip for pagination"),
		),
	)
}

func searchIdentitiesTool() mcp.Tool {
	return mcp.NewTool("search_identities",
		mcp.WithDescription("Search for identities (users/groups) in Azure DevOps"),
		mcp.WithString("search_filter",
			mcp.Required(),
			mcp.Description("Filter type: General, AccountName, DisplayName, MailAddress"),
		),
		mcp.WithString("filter_value",
			mcp.Required(),
			mcp.Description("Value to search for"),
		),
	)
}

func getWorkItemTool() mcp.Tool {
	return mcp.NewTool("get_work_item",
		mcp.WithDescription("Get a work item by ID"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithNumber("work_item_id",
			mcp.Required(),
			mcp.Description("Work item ID"),
		),
		mcp.WithString("expand",
			mcp.Description("Expand options: None, Relations, Fields, Links, All"),
		),
	)
}

func createWorkItemTool() mcp.Tool {
	return mcp.NewTool("create_work_item",
		mcp.WithDescription("Create a new work item"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithString("work_item_type",
			mcp.Required(),
			mcp.Description("Work item type (e.g., Task, Bug, User Story)"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the work item"),
		),
		mcp.WithString("description",
			mcp.Description("Description/details of the work item"),
		),
		mcp.WithString("assigned_to",
			mcp.Description("User to assign the work item to"),
		),
		mcp.WithString("area_path",
			mcp.Description("Area path for the work item"),
		),
		mcp.WithString("iteration_path",
			mcp.Description("Iteration path for the work item"),
		),
		mcp.WithString("state",
			mcp.Description("Initial state of the work item"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority (1-4, where 1 is highest)"),
		),
	)
}

func updateWorkItemTool() mcp.Tool {
	return mcp.NewTool("update_work_item",
		mcp.WithDescription("Update an existing work item"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithNumber("work_item_id",
			mcp.Required(),
			mcp.Description("Work item ID to update"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("assigned_to",
			mcp.Description("New assignee"),
		),
		mcp.WithString("state",
			mcp.Description("New state"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority"),
		),
	)
}

func runWorkItemQueryTool() mcp.Tool {
	return mcp.NewTool("run_work_item_query",
		mcp.WithDescription("Run a WIQL (Work Item Query Language) query"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("WIQL query string"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of results"),
		),
	)
}

func myWorkItemsTool() mcp.Tool {
	return mcp.NewTool("my_work_items",
		mcp.WithDescription("Get work items assigned to the current user"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithBoolean("include_completed",
			mcp.Description("Include completed work items"),
			mcp.DefaultBool(false),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of work items to return"),
			mcp.DefaultNumber(50),
		),
	)
}

func addWorkItemCommentTool() mcp.Tool {
	return mcp.NewTool("add_work_item_comment",
		mcp.WithDescription("Add a comment to a work item"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithNumber("work_item_id",
			mcp.Required(),
			mcp.Description("Work item ID"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Comment text (supports HTML)"),
		),
	)
}

func listRepositoriesTool() mcp.Tool {
	return mcp.NewTool("list_repositories",
		mcp.WithDescription("List all Git repositories in a project"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
	)
}

func listBranchesTool() mcp.Tool {
	return mcp.NewTool("list_branches",
		mcp.WithDescription("List branches in a repository"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithString("repository_id",
			mcp.Required(),
			mcp.Description("Repository name or ID"),
		),
		mcp.WithString("filter_contains",
			mcp.Description("Filter branches containing this string"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of branches to return"),
		),
	)
}

func listPullRequestsTool() mcp.Tool {
	return mcp.NewTool("list_pull_requests",
		mcp.WithDescription("List pull requests in a repository"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithString("repository_id",
			mcp.Required(),
			mcp.Description("Repository name or ID"),
		),
		mcp.WithString("status",
			mcp.Description("Filter by status: Active, Abandoned, Completed, All"),
			mcp.DefaultString("Active"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of PRs to return"),
			mcp.DefaultNumber(50),
		),
	)
}

func createPullRequestTool() mcp.Tool {
	return mcp.NewTool("create_pull_request",
		mcp.WithDescription("Create a new pull request"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithString("repository_id",
			mcp.Required(),
			mcp.Description("Repository name or ID"),
		),
		mcp.WithString("source_ref_name",
			mcp.Required(),
			mcp.Description("Source branch (e.g., 'refs/heads/feature')"),
		),
		mcp.WithString("target_ref_name",
			mcp.Required(),
			mcp.Description("Target branch (e.g., 'refs/heads/main')"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Pull request title"),
		),
		mcp.WithString("description",
			mcp.Description("Pull request description"),
		),
		mcp.WithBoolean("is_draft",
			mcp.Description("Create as draft PR"),
			mcp.DefaultBool(false),
		),
	)
}

func listBuildDefinitionsTool() mcp.Tool {
	return mcp.NewTool("list_build_definitions",
		mcp.WithDescription("List build/pipeline definitions in a project"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithString("name",
			mcp.Description("Filter by definition name"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of definitions to return"),
			mcp.DefaultNumber(50),
		),
	)
}

func listBuildsTool() mcp.Tool {
	return mcp.NewTool("list_builds",
		mcp.WithDescription("List builds in a project"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithString("status",
			mcp.Description("Filter by status: all, completed, inProgress, notStarted"),
		),
		mcp.WithString("result",
			mcp.Description("Filter by result: canceled, failed, succeeded"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of builds to return"),
			mcp.DefaultNumber(50),
		),
	)
}

func queueBuildTool() mcp.Tool {
	return mcp.NewTool("queue_build",
		mcp.WithDescription("Queue a new build"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithNumber("definition_id",
			mcp.Required(),
			mcp.Description("Build definition ID to queue"),
		),
		mcp.WithString("source_branch",
			mcp.Description("Branch to build (e.g., 'refs/heads/main')"),
		),
	)
}

func runPipelineTool() mcp.Tool {
	return mcp.NewTool("run_pipeline",
		mcp.WithDescription("Start a new pipeline run"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithNumber("pipeline_id",
			mcp.Required(),
			mcp.Description("Pipeline ID"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch to run on (e.g., 'main')"),
		),
	)
}

func listWikisTool() mcp.Tool {
	return mcp.NewTool("list_wikis",
		mcp.WithDescription("List wikis in a project or organization"),
		mcp.WithString("project",
			mcp.Description("Project name or ID (optional)"),
		),
	)
}

func getWikiPageTool() mcp.Tool {
	return mcp.NewTool("get_wiki_page",
		mcp.WithDescription("Get a specific wiki page"),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID"),
		),
		mcp.WithString("wiki_identifier",
			mcp.Required(),
			mcp.Description("Wiki name or ID"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Page path (e.g., '/Home')"),
		),
		mcp.WithBoolean("include_content",
			mcp.Description("Include page content in response"),
			mcp.DefaultBool(true),
		),
	)
}

func searchCodeTool() mcp.Tool {
	return mcp.NewTool("search_code",
		mcp.WithDescription("Search for code across repositories"),
		mcp.WithString("search_text",
			mcp.Required(),
			mcp.Description("Text to search for in code"),
		),
		mcp.WithString("project",
			mcp.Description("Filter by project name"),
		),
		mcp.WithString("repository",
			mcp.Description("Filter by repository name"),
		),
		mcp.WithNumber("top",
			mcp.Description("Maximum number of results to return"),
			mcp.DefaultNumber(25),
		),
	)
}
