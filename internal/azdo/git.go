package azdo

import (
	"context"
	"fmt"
	"strconv"
)

// ListRepositories lists the Git repositories of a project.
func (c *Client) ListRepositories(ctx context.Context, project string) (Result, error) {
	return c.get(ctx, fmt.Sprintf("%s/_apis/git/repositories", escape(project)), nil)
}

// ListBranches lists refs in a repository. filterContains narrows to
// branches whose name contains the string; top limits the result set.
func (c *Client) ListBranches(ctx context.Context, project, repositoryID, filterContains string, top int) (Result, error) {
	var params []QueryParam
	if filterContains != "" {
		params = append(params, QueryParam{Key: "filter", Value: filterContains})
	}
	if top > 0 {
		params = append(params, QueryParam{Key: "$top", Value: strconv.Itoa(top)})
	}
	path := fmt.Sprintf("%s/_apis/git/repositories/%s/refs", escape(project), escape(repositoryID))
	return c.get(ctx, path, params)
}

// ListPullRequests lists pull requests in a repository filtered by status
// (Active, Abandoned, Completed, All).
func (c *Client) ListPullRequests(ctx context.Context, project, repositoryID, status string, top int) (Result, error) {
	params := []QueryParam{{Key: "searchCriteria.status", Value: status}}
	if top > 0 {
		params = append(params, QueryParam{Key: "$top", Value: strconv.Itoa(top)})
	}
	path := fmt.Sprintf("%s/_apis/git/repositories/%s/pullrequests", escape(project), escape(repositoryID))
	return c.get(ctx, path, params)
}

// PullRequestSpec describes a pull request to create.
type PullRequestSpec struct {
	SourceRefName string `json:"sourceRefName"`
	TargetRefName string `json:"targetRefName"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	IsDraft       bool   `json:"isDraft"`
}

// CreatePullRequest opens a pull request between two refs.
func (c *Client) CreatePullRequest(ctx context.Context, project, repositoryID string, spec PullRequestSpec) (Result, error) {
	path := fmt.Sprintf("%s/_apis/git/repositories/%s/pullrequests", escape(project), escape(repositoryID))
	return c.post(ctx, path, nil, spec)
}
