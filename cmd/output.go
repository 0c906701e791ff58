package cmd

import (
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// writeJSON writes a JSON response, optionally narrowed to a gjson path
func writeJSON(w io.Writer, raw []byte, path string, prettyPrint bool) error {
	if path != "" {
		result := gjson.GetBytes(raw, path)
		if !result.Exists() {
			return fmt.Errorf("path '%s' not found in response", path)
		}
		raw = []byte(result.Raw)
	}

	if prettyPrint && gjson.ValidBytes(raw) {
		// Pretty output already ends with a newline
		_, err := w.Write(pretty.Pretty(raw))
		return err
	}

	_, err := fmt.Fprintf(w, "%s\n", raw)
	return err
}
