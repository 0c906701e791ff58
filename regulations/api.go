package regulations

import (
	"context"
)

// API defines the regulations.gov operations used by regfetch
type API interface {
	// GetDocket returns the docket as a compact JSON string
	GetDocket(ctx context.Context, docketID string) (string, error)

	// DownloadDocument returns the decoded document and its file format links
	DownloadDocument(ctx context.Context, documentID string) (*Document, error)
}

var _ API = (*Client)(nil)
