package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/regfetch/filter"
)

var (
	filterExpr   string
	preset       string
	linksOnly    bool
	documentPath string
)

// documentOutput is the JSON printed by the document command
type documentOutput struct {
	Document    json.RawMessage `json:"document"`
	FileFormats []string        `json:"fileFormats"`
}

// documentCmd represents the document command
var documentCmd = &cobra.Command{
	Use:   "document <document-id>",
	Short: "Download a document and list its file format links",
	Long: `Download a document by its document ID. The output holds the document
and the file format links of the document and of all its attachments, in order.

Links can be narrowed with a filter expression, for example:
  isFormat("pdf")
  hasText(URL, "attachmentNumber") and Index < 5
  URL contains "attachmentNumber=1"`,
	Example: `  regfetch document EPA-HQ-OAR-2011-0028-0108
  regfetch document EPA-HQ-OAR-2011-0028-0108 --links-only --filter 'isFormat("pdf")'`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runDocument,
}

func init() {
	documentCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression for file links")
	documentCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	documentCmd.Flags().BoolVar(&linksOnly, "links-only", false, "print only the file links, one per line")
	documentCmd.Flags().StringVar(&documentPath, "path", "", "gjson path selecting part of the output")
	documentCmd.MarkFlagsMutuallyExclusive("links-only", "path")
}

func runDocument(cmd *cobra.Command, args []string) error {
	documentID := args[0]

	// Compile the filter before spending an API call
	expr, err := getFilterExpression()
	if err != nil {
		return err
	}
	var linkFilter *filter.LinkFilter
	if expr != "" {
		linkFilter, err = filter.Compile(expr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	logger.Debug().Str("document_id", documentID).Msg("Downloading document")

	doc, err := client.DownloadDocument(cmd.Context(), documentID)
	if err != nil {
		return err
	}

	links := doc.FileFormats
	if linkFilter != nil {
		links, err = linkFilter.Apply(links)
		if err != nil {
			return err
		}
		logger.Debug().
			Str("filter", expr).
			Int("matched", len(links)).
			Int("total", len(doc.FileFormats)).
			Msg("Filtered file links")
	}

	out := cmd.OutOrStdout()
	if linksOnly {
		for _, link := range links {
			if _, err := fmt.Fprintln(out, link); err != nil {
				return err
			}
		}
		return nil
	}

	// Links carry query strings, so keep & unescaped
	var payload bytes.Buffer
	enc := json.NewEncoder(&payload)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(documentOutput{
		Document:    doc.Raw,
		FileFormats: links,
	}); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	return writeJSON(out, bytes.TrimSpace(payload.Bytes()), documentPath, cfg.Output.Pretty)
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default > none
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		return cfg.Preset(preset)
	}

	return cfg.Filter.Default, nil
}
