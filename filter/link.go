package filter

import (
	"net/url"
	"path"
	"strings"
)

// Link is a file format link as seen by a filter expression
type Link struct {
	URL         string
	Host        string
	Path        string
	DocumentID  string
	ContentType string
	// Index is the position of the link in the flattened list
	Index int
}

// ParseLink splits a download link into the fields available to expressions.
// Links that do not parse as URLs keep only URL and Index.
func ParseLink(raw string, index int) Link {
	link := Link{URL: raw, Index: index}

	u, err := url.Parse(raw)
	if err != nil {
		return link
	}

	query := u.Query()
	link.Host = u.Hostname()
	link.Path = u.Path
	link.DocumentID = query.Get("documentId")
	link.ContentType = strings.ToLower(query.Get("contentType"))

	// Links without a contentType parameter fall back to the file extension
	if link.ContentType == "" {
		link.ContentType = strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	}

	return link
}
