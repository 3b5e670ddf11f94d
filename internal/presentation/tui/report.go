package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/nerv/pkg/model"
)

// Report builds a markdown description of the tree rooted at n: a summary
// followed by one table row per member.
func Report(title string, n *model.Node) string {
	var rows []string
	nodes, leaves := 0, 0

	var walk func(path string, cur *model.Node)
	walk = func(path string, cur *model.Node) {
		nodes++
		cur.Each(func(key string, v any) bool {
			p := key
			if path != "" {
				p = path + "." + key
			}
			kind := model.KindOf(v)
			switch kind {
			case model.KindNode:
				child := v.(*model.Node)
				rows = append(rows, fmt.Sprintf("| `%s` | %s | %s | %d members |", p, kind, child.Shape(), child.Len()))
				walk(p, child)
			default:
				leaves++
				rows = append(rows, fmt.Sprintf("| `%s` | %s | | %s |", p, kind, escapeCell(formatValue(v))))
			}
			return true
		})
	}
	walk("", n)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Root is a **%s** with %d members. The tree holds %d nodes and %d values.\n\n", n.Shape(), n.Len(), nodes, leaves)
	if err := n.Validate(); err != nil {
		fmt.Fprintf(&b, "> Validation failed: %s\n\n", escapeCell(err.Error()))
	}
	if len(rows) == 0 {
		b.WriteString("_empty_\n")
		return b.String()
	}
	b.WriteString("| Path | Kind | Shape | Value |\n")
	b.WriteString("|------|------|-------|-------|\n")
	for _, r := range rows {
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
