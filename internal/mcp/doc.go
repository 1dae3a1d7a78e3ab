// Package mcp implements the Model Context Protocol (MCP) server for
// Azure DevOps.
//
// The server exposes 21 tools to AI coding assistants, grouped by area:
//
//   - Core: list_projects, get_project, list_teams, search_identities
//   - Work items: get_work_item, create_work_item, update_work_item,
//     run_work_item_query, my_work_items, add_work_item_comment
//   - Repositories: list_repositories, list_branches, list_pull_requests,
//     create_pull_request
//   - Pipelines: list_build_definitions, list_builds, queue_build,
//     run_pipeline
//   - Wikis: list_wikis, get_wiki_page
//   - Search: search_code
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol. The server supports two transports:
// stdio (default, for editor-launched processes) and HTTP with
// server-sent events for standalone deployments.
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// # Credentials
//
// Credentials are not required at startup. The first tool call resolves
// the organization name and personal access token through the
// credentials package (environment first, then the remote secrets
// service) and every later call reuses the memoized values. A failed
// resolution surfaces to the caller as a tool error naming the missing
// key; the token value itself never appears in any message.
//
// # Tool Results
//
// Every tool returns the raw Azure DevOps REST response as indented
// JSON text. The server does not reshape or summarize API payloads, so
// assistants see exactly what the REST API returned.
//
// # Error Handling
//
// Invalid or missing arguments produce a JSON-RPC error:
//
//	{
//	  "error": {
//	    "code": -32602,
//	    "message": "project parameter is required",
//	    "data": {"param": "project", "reason": "missing or empty"}
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error
//
// Credential and REST failures are returned unwrapped so their typed
// detail (status code, endpoint, credential key) reaches the client.
//
// # Logging
//
// The server logs to stderr; stdout is reserved for the MCP protocol
// when running on the stdio transport.
package mcp
