// Package structures provides helpers for the Slack data types found in
// export archives.
package structures

// NVL returns the first non-empty string of its arguments.
func NVL(s string, rest ...string) string {
	if s != "" {
		return s
	}
	for _, s = range rest {
		if s != "" {
			return s
		}
	}
	return ""
}

// FirstNonEmpty evaluates the given extractors in order and returns the first
// non-empty result.  It makes the fallback order over partially populated
// records an explicit, testable table.
func FirstNonEmpty(fns ...func() string) string {
	for _, fn := range fns {
		if v := fn(); v != "" {
			return v
		}
	}
	return ""
}
