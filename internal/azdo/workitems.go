package azdo

import (
	"context"
	"fmt"
	"strconv"
)

// PatchOp is one JSON Patch operation as used by the work item write
// endpoints.
type PatchOp struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

// AddField builds the "add" operation for a work item field.
func AddField(field string, value interface{}) PatchOp {
	return PatchOp{Op: "add", Path: "/fields/" + field, Value: value}
}

// GetWorkItem fetches a work item by ID. expand selects related data
// (Relations, Fields, Links, All) when non-empty.
func (c *Client) GetWorkItem(ctx context.Context, project string, workItemID int, expand string) (Result, error) {
	var params []QueryParam
	if expand != "" {
		params = append(params, QueryParam{Key: "$expand", Value: expand})
	}
	return c.get(ctx, fmt.Sprintf("%s/_apis/wit/workitems/%d", escape(project), workItemID), params)
}

// CreateWorkItem creates a work item of the given type from a JSON Patch
// document.
func (c *Client) CreateWorkItem(ctx context.Context, project, workItemType string, document []PatchOp) (Result, error) {
	path := fmt.Sprintf("%s/_apis/wit/workitems/$%s", escape(project), escape(workItemType))
	return c.call(ctx, "POST", c.baseURL, path, nil, document, contentTypeJSONPatch)
}

// UpdateWorkItem applies a JSON Patch document to an existing work item.
func (c *Client) UpdateWorkItem(ctx context.Context, project string, workItemID int, document []PatchOp) (Result, error) {
	path := fmt.Sprintf("%s/_apis/wit/workitems/%d", escape(project), workItemID)
	return c.patch(ctx, path, nil, document, contentTypeJSONPatch)
}

// AddWorkItemComment adds a comment (HTML allowed) to a work item.
func (c *Client) AddWorkItemComment(ctx context.Context, project string, workItemID int, text string) (Result, error) {
	path := fmt.Sprintf("%s/_apis/wit/workitems/%d/comments", escape(project), workItemID)
	body := map[string]interface{}{"text": text}
	return c.post(ctx, path, nil, body)
}

// RunWIQL executes a WIQL query. The query string is passed through
// opaquely; top limits the result set when positive.
func (c *Client) RunWIQL(ctx context.Context, project, query string, top int) (Result, error) {
	var params []QueryParam
	if top > 0 {
		params = append(params, QueryParam{Key: "$top", Value: strconv.Itoa(top)})
	}
	body := map[string]interface{}{"query": query}
	return c.post(ctx, fmt.Sprintf("%s/_apis/wit/wiql", escape(project)), params, body)
}
