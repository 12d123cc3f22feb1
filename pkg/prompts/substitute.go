package prompts

import "strings"

// Substitute replaces every literal {name} occurrence in template with
// the corresponding value from vars. Placeholders without a matching
// key are left verbatim; substitution is not required to be total.
func Substitute(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}
