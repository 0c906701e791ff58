package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pdfLink  = "https://api.data.gov/regulations/v3/download?documentId=EPA-HQ-OAR-2011-0028-0108&contentType=pdf"
	wordLink = "https://api.data.gov/regulations/v3/download?documentId=EPA-HQ-OAR-2011-0028-0108&contentType=msw12"
	attLink  = "https://api.data.gov/regulations/v3/download?documentId=EPA-HQ-OAR-2011-0028-0108&attachmentNumber=1&contentType=pdf"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `ContentType == "pdf"`,
		},
		{
			name:       "helper function",
			expression: `isFormat("PDF") and hasText(URL, "attachmentNumber")`,
		},
		{
			name:       "infix operator",
			expression: `URL contains "attachmentNumber" and Index < 5`,
		},
		{
			name:       "prefix and suffix helpers",
			expression: `beginsWith(URL, "https://") or finishesWith(Path, ".pdf")`,
		},
		{
			name:       "builtin case folding",
			expression: `lower(DocumentID) startsWith "epa"`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `isFormat("unclosed`,
			wantErr:    true,
		},
		{
			name:       "unknown name",
			expression: `Year > 2020`,
			wantErr:    true,
		},
		{
			name:       "non boolean result",
			expression: `Index + 1`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.String())
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		link       Link
		want       bool
	}{
		{"content type", `ContentType == "pdf"`, ParseLink(pdfLink, 0), true},
		{"content type mismatch", `ContentType == "pdf"`, ParseLink(wordLink, 1), false},
		{"isFormat ignores case", `isFormat("MSW12")`, ParseLink(wordLink, 0), true},
		{"index", `Index == 0`, ParseLink(pdfLink, 0), true},
		{"hasText ignores case", `hasText(URL, "ATTACHMENTNUMBER=1")`, ParseLink(attLink, 2), true},
		{"hasText mismatch", `hasText(URL, "attachmentNumber")`, ParseLink(pdfLink, 0), false},
		{"beginsWith", `beginsWith(DocumentID, "epa-hq")`, ParseLink(pdfLink, 0), true},
		{"finishesWith", `finishesWith(URL, "CONTENTTYPE=MSW12")`, ParseLink(wordLink, 1), true},
		{"contains operator", `URL contains "attachmentNumber=1"`, ParseLink(attLink, 2), true},
		{"contains operator is case sensitive", `URL contains "ATTACHMENTNUMBER"`, ParseLink(attLink, 2), false},
		{"endsWith operator", `URL endsWith "contentType=pdf"`, ParseLink(pdfLink, 0), true},
		{"lower builtin", `lower(DocumentID) startsWith "epa-hq"`, ParseLink(pdfLink, 0), true},
		{"upper builtin", `upper(ContentType) == "PDF"`, ParseLink(pdfLink, 0), true},
		{"host", `Host == "api.data.gov"`, ParseLink(pdfLink, 0), true},
		{"link struct", `Link.Index == 3`, ParseLink(pdfLink, 3), true},
		{"negation", `not isFormat("pdf")`, ParseLink(pdfLink, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			got, err := f.Match(tt.link)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchEvaluationError(t *testing.T) {
	f, err := Compile(`[1, 2][Index] == 1`)
	require.NoError(t, err)

	_, err = f.Match(ParseLink(pdfLink, 5))
	require.Error(t, err)

	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, pdfLink, evalErr.Link)
}

func TestApply(t *testing.T) {
	links := []string{pdfLink, wordLink, attLink}

	t.Run("keeps order", func(t *testing.T) {
		f, err := Compile(`isFormat("pdf")`)
		require.NoError(t, err)

		got, err := f.Apply(links)
		require.NoError(t, err)
		assert.Equal(t, []string{pdfLink, attLink}, got)
	})

	t.Run("index is position in list", func(t *testing.T) {
		f, err := Compile(`Index >= 1`)
		require.NoError(t, err)

		got, err := f.Apply(links)
		require.NoError(t, err)
		assert.Equal(t, []string{wordLink, attLink}, got)
	})

	t.Run("no matches", func(t *testing.T) {
		f, err := Compile(`isFormat("html")`)
		require.NoError(t, err)

		got, err := f.Apply(links)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("empty input", func(t *testing.T) {
		f, err := Compile(`true`)
		require.NoError(t, err)

		got, err := f.Apply(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		index int
		want  Link
	}{
		{
			name:  "download link",
			raw:   pdfLink,
			index: 0,
			want: Link{
				URL:         pdfLink,
				Host:        "api.data.gov",
				Path:        "/regulations/v3/download",
				DocumentID:  "EPA-HQ-OAR-2011-0028-0108",
				ContentType: "pdf",
				Index:       0,
			},
		},
		{
			name:  "extension fallback",
			raw:   "https://example.gov/files/Comment.DOCX",
			index: 4,
			want: Link{
				URL:         "https://example.gov/files/Comment.DOCX",
				Host:        "example.gov",
				Path:        "/files/Comment.DOCX",
				ContentType: "docx",
				Index:       4,
			},
		},
		{
			name:  "opaque string",
			raw:   "file link",
			index: 1,
			want: Link{
				URL:   "file link",
				Path:  "file link",
				Index: 1,
			},
		},
		{
			name:  "unparseable",
			raw:   "http://[::1",
			index: 2,
			want:  Link{URL: "http://[::1", Index: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLink(tt.raw, tt.index))
		})
	}
}
