// Package regulations provides a client for the regulations.gov v3 API.
//
// The client retrieves dockets and documents, translates the status codes
// the API documents into typed errors and flattens the file format links of
// a document (top-level and per attachment) into one ordered list.
//
// # Usage
//
//	client, err := regulations.NewClient(apiKey,
//		regulations.WithLogger(logger),
//		regulations.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	docket, err := client.GetDocket(ctx, "EPA-HQ-OAR-2011-0028")
//
//	doc, err := client.DownloadDocument(ctx, "EPA-HQ-OAR-2011-0028-0108")
//	for _, link := range doc.FileFormats {
//		fmt.Println(link)
//	}
//
// # Error Handling
//
// Failed responses are returned as *APIError. Each one unwraps to a sentinel
// so callers can match with errors.Is:
//
//	_, err := client.DownloadDocument(ctx, id)
//	switch {
//	case errors.Is(err, regulations.ErrBadDocID):
//		// no such document
//	case errors.Is(err, regulations.ErrExceedCallLimit):
//		// quota exhausted, the client does not wait or retry
//	}
//
// Status codes other than 400, 403, 404 and 429 that are not 2xx fail with
// ErrUnexpectedStatus.
package regulations
