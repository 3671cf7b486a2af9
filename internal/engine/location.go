package engine

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// locationPath renders an absolute, position-qualified path to the matched
// node, the form downstream report consumers expect in the location attribute.
func locationPath(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == xmlquery.DocumentNode {
		return "/"
	}
	if n.Type == xmlquery.AttributeNode {
		return locationPath(n.Parent) + "/@" + n.Data
	}
	if n.Type == xmlquery.TextNode {
		return locationPath(n.Parent) + "/text()"
	}

	var segs []string
	for cur := n; cur != nil && cur.Type == xmlquery.ElementNode; cur = cur.Parent {
		segs = append(segs, fmt.Sprintf("%s[%d]", nodeName(cur), elementPosition(cur)))
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return "/" + strings.Join(segs, "/")
}

func nodeName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

// elementPosition is the 1-based position of n among same-named element
// siblings.
func elementPosition(n *xmlquery.Node) int {
	pos := 1
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type == xmlquery.ElementNode && sib.Data == n.Data && sib.Prefix == n.Prefix {
			pos++
		}
	}
	return pos
}
