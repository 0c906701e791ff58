package regulations

// FileFormats flattens the file format links of a decoded document body.
//
// Entries of the top-level "fileFormats" list come first, followed by the
// "fileFormats" entries of each element of "attachments", in attachment
// order. Both sources are concatenated as-is, without deduplication. Missing
// or wrongly typed fields are treated as empty and non-string entries are
// skipped. The returned slice is never nil.
func FileFormats(body any) []string {
	links := []string{}

	doc, ok := body.(map[string]any)
	if !ok {
		return links
	}

	links = appendLinks(links, doc["fileFormats"])

	attachments, ok := doc["attachments"].([]any)
	if !ok {
		return links
	}
	for _, item := range attachments {
		if attachment, ok := item.(map[string]any); ok {
			links = appendLinks(links, attachment["fileFormats"])
		}
	}

	return links
}

func appendLinks(dst []string, value any) []string {
	switch list := value.(type) {
	case []any:
		for _, entry := range list {
			if link, ok := entry.(string); ok {
				dst = append(dst, link)
			}
		}
	case []string:
		dst = append(dst, list...)
	}
	return dst
}
