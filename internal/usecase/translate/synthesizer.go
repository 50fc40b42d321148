package translate

import (
	"fmt"
	"regexp"
)

// compoundRule matches one multi-step intent and synthesizes a composite
// command line from the captured groups.
type compoundRule struct {
	name    string
	pattern *regexp.Regexp
	build   func(groups []string) string
}

// compoundRules are tried in order before the single-shot pattern table;
// the first match wins.
var compoundRules = []compoundRule{
	{
		name:    "create_dir_and_move",
		pattern: regexp.MustCompile(`create.*?(?:folder|directory).*?(?:called|named)\s+(\S+).*?and.*?move.*?(\S+).*?(?:into|to).*?it`),
		build: func(g []string) string {
			return fmt.Sprintf("mkdir %s && mv %s %s/", g[0], g[1], g[0])
		},
	},
	{
		name:    "copy_by_extension",
		pattern: regexp.MustCompile(`copy.*?all.*?(\.\w+).*?files?.*?to.*?(\S+)`),
		build: func(g []string) string {
			return fmt.Sprintf("cp *%s %s/", g[0], g[1])
		},
	},
	{
		name:    "delete_all_in_dir",
		pattern: regexp.MustCompile(`delete.*?all.*?files?.*?in.*?(\S+)`),
		build: func(g []string) string {
			return fmt.Sprintf("rm %s/*", g[0])
		},
	},
	{
		name:    "find_and_delete",
		pattern: regexp.MustCompile(`find.*?and.*?delete.*?files?.*?(?:called|named).*?(\S+)`),
		build: func(g []string) string {
			return fmt.Sprintf("find . -name %q -delete", g[0])
		},
	},
}

// synthesize tries the compound-intent matchers against the normalized
// phrase and returns the composite command line of the first that fires.
func synthesize(phrase string) (string, bool) {
	for _, rule := range compoundRules {
		if m := rule.pattern.FindStringSubmatch(phrase); m != nil {
			return rule.build(m[1:]), true
		}
	}
	return "", false
}
