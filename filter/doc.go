// Package filter selects document file links with expr-lang expressions.
//
// Each link is exposed to the expression through the fields of Link and a
// few case-insensitive string helpers (hasText, beginsWith, finishesWith,
// isFormat). The expr operators contains, startsWith and endsWith are
// case-sensitive; combine them with lower() to fold case:
//
//	ContentType == "pdf"
//	isFormat("pdf") or isFormat("msw12")
//	hasText(URL, "attachmentNumber=1") and Index < 3
//	lower(URL) contains "attachmentnumber"
//
// Expressions must evaluate to a boolean.
package filter
