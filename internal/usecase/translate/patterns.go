package translate

import (
	"regexp"
	"strconv"
	"strings"
)

// Rule maps a natural-language intent category to an ordered set of regexes
// and a command template. Rules are evaluated top to bottom, and within a
// rule its patterns in declaration order; the first match wins. The ordering
// is a deliberate priority ranking (file creation outranks generic listing)
// and is covered by tests — append with care.
type Rule struct {
	Category string
	Patterns []*regexp.Regexp
	Template string
}

func mustPatterns(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(expr)
	}
	return compiled
}

// rules is the single-shot pattern table.
var rules = []Rule{
	{
		Category: "create_file",
		Patterns: mustPatterns(
			`create.*?file.*?(?:named|called)\s+(\S+)`,
			`make.*?file.*?(\S+)`,
			`touch.*?(\S+)`,
			`new file.*?(\S+)`,
		),
		Template: "touch {0}",
	},
	{
		Category: "create_directory",
		Patterns: mustPatterns(
			`create.*?(?:directory|folder|dir).*?(?:named|called)\s+(\S+)`,
			`make.*?(?:directory|folder|dir).*?(\S+)`,
			`mkdir.*?(\S+)`,
			`new (?:directory|folder).*?(\S+)`,
		),
		Template: "mkdir {0}",
	},
	{
		Category: "list_files",
		Patterns: mustPatterns(
			`list.*?files?`,
			`show.*?files?`,
			`what.*?files?.*?here`,
			`ls`,
			`dir`,
		),
		Template: "ls",
	},
	{
		Category: "delete_file",
		Patterns: mustPatterns(
			`delete.*?file.*?(\S+)`,
			`remove.*?file.*?(\S+)`,
			`rm.*?(\S+)`,
			`del.*?(\S+)`,
		),
		Template: "rm {0}",
	},
	{
		Category: "copy_file",
		Patterns: mustPatterns(
			`copy.*?(\S+).*?to.*?(\S+)`,
			`cp.*?(\S+).*?(\S+)`,
			`duplicate.*?(\S+).*?as.*?(\S+)`,
		),
		Template: "cp {0} {1}",
	},
	{
		Category: "move_file",
		Patterns: mustPatterns(
			`move.*?(\S+).*?to.*?(\S+)`,
			`mv.*?(\S+).*?(\S+)`,
			`relocate.*?(\S+).*?to.*?(\S+)`,
		),
		Template: "mv {0} {1}",
	},
	{
		Category: "change_directory",
		Patterns: mustPatterns(
			`go.*?to.*?(?:directory|folder).*?(\S+)`,
			`change.*?(?:directory|folder).*?to.*?(\S+)`,
			`cd.*?(\S+)`,
			`navigate.*?to.*?(\S+)`,
		),
		Template: "cd {0}",
	},
	{
		Category: "show_content",
		Patterns: mustPatterns(
			`show.*?content.*?(?:of|in).*?(\S+)`,
			`display.*?(\S+)`,
			`cat.*?(\S+)`,
			`read.*?(\S+)`,
			`view.*?(\S+)`,
		),
		Template: "cat {0}",
	},
	{
		Category: "find_files",
		Patterns: mustPatterns(
			`find.*?files?.*?(?:named|called).*?(\S+)`,
			`search.*?for.*?(\S+)`,
			`locate.*?(\S+)`,
		),
		Template: `find . -name "{0}"`,
	},
	{
		Category: "system_info",
		Patterns: mustPatterns(
			`show.*?system.*?info`,
			`system.*?status`,
			`resource.*?usage`,
			`top`,
		),
		Template: "top",
	},
	{
		Category: "list_processes",
		Patterns: mustPatterns(
			`list.*?processes?`,
			`show.*?processes?`,
			`running.*?programs?`,
			`ps`,
		),
		Template: "ps",
	},
	{
		Category: "current_directory",
		Patterns: mustPatterns(
			`where.*?am.*?i`,
			`current.*?(?:directory|folder|location)`,
			`pwd`,
			`show.*?(?:directory|folder)`,
		),
		Template: "pwd",
	},
	{
		Category: "disk_usage",
		Patterns: mustPatterns(
			`disk.*?usage`,
			`disk.*?space`,
			`storage.*?info`,
			`df`,
		),
		Template: "df",
	},
	{
		Category: "memory_usage",
		Patterns: mustPatterns(
			`memory.*?usage`,
			`ram.*?usage`,
			`memory.*?info`,
			`free.*?memory`,
			`free`,
		),
		Template: "free",
	},
	{
		Category: "clear_screen",
		Patterns: mustPatterns(
			`clear.*?screen`,
			`clear.*?terminal`,
			`cls`,
			`clear`,
		),
		Template: "clear",
	},
	{
		Category: "help",
		Patterns: mustPatterns(
			`help`,
			`what.*?can.*?do`,
			`available.*?commands?`,
			`show.*?commands?`,
		),
		Template: "help",
	},
	{
		Category: "echo",
		Patterns: mustPatterns(
			`say.*?"([^"]+)"`,
			`echo.*?"([^"]+)"`,
			`print.*?"([^"]+)"`,
			`display.*?"([^"]+)"`,
		),
		Template: `echo "{0}"`,
	},
}

// matchRules runs the phrase through the pattern table and returns the
// filled command template of the first matching rule.
func matchRules(phrase string) (command, category string, ok bool) {
	for _, rule := range rules {
		for _, pattern := range rule.Patterns {
			m := pattern.FindStringSubmatch(phrase)
			if m == nil {
				continue
			}
			return fillTemplate(rule.Template, m[1:]), rule.Category, true
		}
	}
	return "", "", false
}

// fillTemplate substitutes {0}, {1}, ... with the captured groups.
func fillTemplate(template string, groups []string) string {
	out := template
	for i, g := range groups {
		out = strings.ReplaceAll(out, "{"+strconv.Itoa(i)+"}", g)
	}
	return out
}
