package yahoo

import (
	"regexp"
	"strconv"
	"strings"
)

// crumbPatterns are tried in order against the homepage HTML.
var crumbPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"crumb"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"CrsrfToken"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`crumb=([a-zA-Z0-9_.~-]+)`),
}

var unicodeEscape = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)

// ExtractCrumb finds a crumb embedded in the provider homepage.
func ExtractCrumb(html string) (string, bool) {
	for _, p := range crumbPatterns {
		if m := p.FindStringSubmatch(html); m != nil {
			return unescapeCrumb(m[1]), true
		}
	}
	return "", false
}

// unescapeCrumb decodes \uXXXX sequences into literal characters.
func unescapeCrumb(s string) string {
	return unicodeEscape.ReplaceAllStringFunc(s, func(esc string) string {
		n, err := strconv.ParseUint(esc[2:], 16, 32)
		if err != nil {
			return esc
		}
		return string(rune(n))
	})
}

// ValidCrumb rejects empty bodies, HTML error pages and "Unauthorized" replies.
func ValidCrumb(crumb string) bool {
	return crumb != "" && !strings.Contains(crumb, "<") && !strings.Contains(crumb, "Unauthorized")
}

// cookieHeader turns Set-Cookie values into a Cookie request header,
// dropping attributes such as Path and Expires.
func cookieHeader(setCookies []string) string {
	pairs := make([]string, 0, len(setCookies))
	for _, sc := range setCookies {
		pair, _, _ := strings.Cut(sc, ";")
		if pair = strings.TrimSpace(pair); pair != "" {
			pairs = append(pairs, pair)
		}
	}
	return strings.Join(pairs, "; ")
}
