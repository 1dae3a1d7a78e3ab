package azdo

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// ListProjects lists projects in the organization, filtered by state.
// top and skip page the result when positive.
func (c *Client) ListProjects(ctx context.Context, stateFilter string, top, skip int) (Result, error) {
	params := []QueryParam{{Key: "stateFilter", Value: stateFilter}}
	if top > 0 {
		params = append(params, QueryParam{Key: "$top", Value: strconv.Itoa(top)})
	}
	if skip > 0 {
		params = append(params, QueryParam{Key: "$skip", Value: strconv.Itoa(skip)})
	}
	return c.get(ctx, "_apis/projects", params)
}

// GetProject fetches a single project by name or ID.
func (c *Client) GetProject(ctx context.Context, project string) (Result, error) {
	return c.get(ctx, fmt.Sprintf("_apis/projects/%s", escape(project)), nil)
}

// ListTeams lists the teams of a project.
func (c *Client) ListTeams(ctx context.Context, project string, top, skip int) (Result, error) {
	var params []QueryParam
	if top > 0 {
		params = append(params, QueryParam{Key: "$top", Value: strconv.Itoa(top)})
	}
	if skip > 0 {
		params = append(params, QueryParam{Key: "$skip", Value: strconv.Itoa(skip)})
	}
	return c.get(ctx, fmt.Sprintf("_apis/projects/%s/teams", escape(project)), params)
}

// SearchIdentities looks up users and groups. Identity endpoints live on
// the vssps host rather than dev.azure.com.
func (c *Client) SearchIdentities(ctx context.Context, searchFilter, filterValue string) (Result, error) {
	params := []QueryParam{
		{Key: "searchFilter", Value: searchFilter},
		{Key: "filterValue", Value: filterValue},
	}
	return c.call(ctx, http.MethodGet, c.vsspsURL, "_apis/identities", params, nil, "")
}
