package regulations

import "encoding/json"

// Resource describes one of the record types served by the API. It supplies
// the endpoint, the id query parameter and the not-found error used when a
// response is classified.
type Resource struct {
	name     string
	path     string
	idParam  string
	notFound error
}

var (
	// DocketResource is a regulatory proceeding identified by a docket ID.
	DocketResource = Resource{
		name:     "docket",
		path:     "docket.json",
		idParam:  "docketID",
		notFound: ErrBadDocketID,
	}

	// DocumentResource is an item filed within a docket.
	DocumentResource = Resource{
		name:     "document",
		path:     "document.json",
		idParam:  "documentId",
		notFound: ErrBadDocID,
	}
)

// String returns the resource name
func (r Resource) String() string {
	if r.name == "" {
		return "resource"
	}
	return r.name
}

// Path returns the endpoint path relative to the API base URL
func (r Resource) Path() string {
	return r.path
}

// IDParam returns the query parameter carrying the resource identifier
func (r Resource) IDParam() string {
	return r.idParam
}

// Document is a successfully downloaded document
type Document struct {
	// ID is the document identifier the request was made with
	ID string
	// Body is the decoded JSON response
	Body any
	// Raw is the response body as received
	Raw json.RawMessage
	// FileFormats holds the flattened file format links, see FileFormats
	FileFormats []string
}
