package roster

import "strings"

// ParseUsernames splits raw participant input on whitespace, commas, and
// newlines, normalizes each token to start with "@", and deduplicates while
// preserving first-seen order.
func ParseUsernames(raw string) []string {
	raw = strings.NewReplacer("\n", " ", ",", " ").Replace(raw)

	seen := make(map[string]struct{})
	var out []string
	for _, token := range strings.Fields(raw) {
		uname := token
		if !strings.HasPrefix(uname, "@") {
			uname = "@" + uname
		}
		if _, ok := seen[uname]; ok {
			continue
		}
		seen[uname] = struct{}{}
		out = append(out, uname)
	}
	return out
}

// FormatList renders usernames as a bulleted list for chat messages.
// An empty roster renders as an em-dash placeholder.
func FormatList(usernames []string) string {
	if len(usernames) == 0 {
		return "—"
	}
	var b strings.Builder
	for i, u := range usernames {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• ")
		b.WriteString(u)
	}
	return b.String()
}

// Intersect returns the members of items that are present in collection,
// in the order they appear in items.
func Intersect(items, collection []string) []string {
	in := make(map[string]struct{}, len(collection))
	for _, c := range collection {
		in[c] = struct{}{}
	}
	var out []string
	for _, it := range items {
		if _, ok := in[it]; ok {
			out = append(out, it)
		}
	}
	return out
}
