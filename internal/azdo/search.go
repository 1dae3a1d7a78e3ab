package azdo

import (
	"context"
	"net/http"
)

// SearchCode runs a code search across repositories. Search endpoints
// live on the almsearch host. project and repository narrow the search
// when non-empty.
func (c *Client) SearchCode(ctx context.Context, searchText, project, repository string, top int) (Result, error) {
	filters := map[string][]string{}
	if project != "" {
		filters["Project"] = []string{project}
	}
	if repository != "" {
		filters["Repository"] = []string{repository}
	}

	if top <= 0 {
		top = 25
	}

	body := map[string]interface{}{
		"searchText": searchText,
		"$top":       top,
		"$skip":      0,
		"filters":    filters,
	}
	return c.call(ctx, http.MethodPost, c.searchURL, "_apis/search/codesearchresults", nil, body, "")
}
