package ratelimit

import "strings"

// MatchRule returns the first rule that covers method and path, or nil.
// A rule prefix ending in "/" also matches everything below it; any other
// prefix must equal the path.
func MatchRule(path, method string, rules []Rule) *Rule {
	for i := range rules {
		r := &rules[i]
		if r.Method != "" && !strings.EqualFold(r.Method, method) {
			continue
		}
		if path == r.Prefix || path == strings.TrimSuffix(r.Prefix, "/") {
			return r
		}
		if strings.HasSuffix(r.Prefix, "/") && strings.HasPrefix(path, r.Prefix) {
			return r
		}
	}
	return nil
}
