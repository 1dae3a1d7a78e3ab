package azdo

import (
	"context"
	"fmt"
	"strconv"
)

// ListBuildDefinitions lists build/pipeline definitions, optionally
// filtered by name.
func (c *Client) ListBuildDefinitions(ctx context.Context, project, name string, top int) (Result, error) {
	var params []QueryParam
	if name != "" {
		params = append(params, QueryParam{Key: "name", Value: name})
	}
	if top > 0 {
		params = append(params, QueryParam{Key: "$top", Value: strconv.Itoa(top)})
	}
	return c.get(ctx, fmt.Sprintf("%s/_apis/build/definitions", escape(project)), params)
}

// ListBuilds lists builds, optionally filtered by status and result.
func (c *Client) ListBuilds(ctx context.Context, project, status, result string, top int) (Result, error) {
	var params []QueryParam
	if status != "" {
		params = append(params, QueryParam{Key: "statusFilter", Value: status})
	}
	if result != "" {
		params = append(params, QueryParam{Key: "resultFilter", Value: result})
	}
	if top > 0 {
		params = append(params, QueryParam{Key: "$top", Value: strconv.Itoa(top)})
	}
	return c.get(ctx, fmt.Sprintf("%s/_apis/build/builds", escape(project)), params)
}

// QueueBuild queues a build of the given definition. sourceBranch, when
// non-empty, must be a full ref like refs/heads/main.
func (c *Client) QueueBuild(ctx context.Context, project string, definitionID int, sourceBranch string) (Result, error) {
	body := map[string]interface{}{
		"definition": map[string]interface{}{"id": definitionID},
	}
	if sourceBranch != "" {
		body["sourceBranch"] = sourceBranch
	}
	return c.post(ctx, fmt.Sprintf("%s/_apis/build/builds", escape(project)), nil, body)
}

// RunPipeline starts a run of a YAML pipeline, optionally on a branch
// (short name, without the refs/heads/ prefix).
func (c *Client) RunPipeline(ctx context.Context, project string, pipelineID int, branch string) (Result, error) {
	body := map[string]interface{}{}
	if branch != "" {
		body["resources"] = map[string]interface{}{
			"repositories": map[string]interface{}{
				"self": map[string]interface{}{
					"refName": "refs/heads/" + branch,
				},
			},
		}
	}
	return c.post(ctx, fmt.Sprintf("%s/_apis/pipelines/%d/runs", escape(project), pipelineID), nil, body)
}
