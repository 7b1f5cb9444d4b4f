package tree

import (
	"net/url"
	"strings"
)

// SplitURL splits a raw URL into its path and query string, dropping any
// scheme, host and fragment.
//
// Unlike [url.Parse] it tolerates placeholders anywhere, including the host. A URL
// without a scheme is all path.
func SplitURL(raw string) (path, query string) {
	rest, _, _ := strings.Cut(raw, "#")
	rest, query, _ = strings.Cut(rest, "?")

	if scheme, after, ok := strings.Cut(rest, "://"); ok && isScheme(scheme) {
		rest = after
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			return rest[slash:], query
		}

		return "", query
	}

	return rest, query
}

// isScheme reports whether s is a syntactically valid URL scheme.
func isScheme(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9', c == '+', c == '-', c == '.':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// ParseQuery parses a query string into ordered pairs.
//
// Pairs without a value, either "key" or "key=", are dropped and keys and
// values are unescaped where possible.
func ParseQuery(query string) Query {
	var params Query

	for part := range strings.SplitSeq(query, "&") {
		key, value, ok := strings.Cut(part, "=")
		if !ok || value == "" {
			continue
		}

		params = append(params, Param{Key: unescape(key), Value: unescape(value)})
	}

	return params
}

func unescape(s string) string {
	unescaped, err := url.QueryUnescape(s)
	if err != nil {
		return strings.ReplaceAll(s, "+", " ")
	}

	return unescaped
}
