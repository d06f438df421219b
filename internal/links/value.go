package links

import (
	"net/url"
	"regexp"
)

// urlPattern is a loose test for "looks like a web address": an optional
// scheme, one or more dotted host labels, a 2-6 letter TLD, then an optional
// port and path.
var urlPattern = regexp.MustCompile(
	`^(?:[a-zA-Z][a-zA-Z0-9+.\-]*://)?` +
		`(?:[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?\.)+[a-zA-Z]{2,6}` +
		`(?::\d+)?(?:[/?#]\S*)?$`)

// LooksLikeURL reports whether a stored value should be redirected to rather
// than displayed.
func LooksLikeURL(value string) bool {
	return urlPattern.MatchString(value)
}

// AbsoluteURL returns value as an absolute URL, prefixing https:// when it
// has no scheme and host of its own.
func AbsoluteURL(value string) string {
	u, err := url.Parse(value)
	if err == nil && u.Scheme != "" && u.Host != "" {
		return value
	}
	return "https://" + value
}
