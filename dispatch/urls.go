package dispatch

import "strings"

// ExtractURLs returns the whitespace-delimited tokens of text that start with
// the literal prefix "http" (which also matches "https"), in order of
// appearance. Tokens are not validated or deduplicated; a malformed candidate
// is forwarded as-is and left for the fetch to reject.
func ExtractURLs(text string) []string {
	var urls []string
	for _, tok := range strings.Fields(text) {
		if strings.HasPrefix(tok, "http") {
			urls = append(urls, tok)
		}
	}
	return urls
}
