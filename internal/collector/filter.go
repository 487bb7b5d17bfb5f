package collector

import (
	"iter"
	"path"
	"regexp"
)

// DefaultPattern matches compose file names such as docker-compose.yml and
// docker-compose.override.yml.
const DefaultPattern = `^docker-compose.*\.yml$`

var defaultPattern = regexp.MustCompile(DefaultPattern)

// Filter yields the paths whose final segment matches pattern, keeping
// their order. A nil pattern means DefaultPattern.
func Filter(paths iter.Seq[string], pattern *regexp.Regexp) iter.Seq[string] {
	if pattern == nil {
		pattern = defaultPattern
	}
	return func(yield func(string) bool) {
		for p := range paths {
			if !pattern.MatchString(path.Base(p)) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}
