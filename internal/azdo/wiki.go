package azdo

import (
	"context"
	"fmt"
	"strconv"
)

// ListWikis lists wikis in a project, or across the organization when
// project is empty.
func (c *Client) ListWikis(ctx context.Context, project string) (Result, error) {
	path := "_apis/wiki/wikis"
	if project != "" {
		path = fmt.Sprintf("%s/_apis/wiki/wikis", escape(project))
	}
	return c.get(ctx, path, nil)
}

// GetWikiPage fetches a wiki page by path.
func (c *Client) GetWikiPage(ctx context.Context, project, wikiIdentifier, pagePath string, includeContent bool) (Result, error) {
	params := []QueryParam{
		{Key: "path", Value: pagePath},
		{Key: "includeContent", Value: strconv.FormatBool(includeContent)},
	}
	path := fmt.Sprintf("%s/_apis/wiki/wikis/%s/pages", escape(project), escape(wikiIdentifier))
	return c.get(ctx, path, params)
}
