package profile

import "strings"

// Child returns the first direct child named name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Resolve follows path from n's direct children down, taking the first child
// with the matching name at each level, and returns the inner text of the
// last element. It never backtracks to a later sibling and never searches
// below the direct children of the current element. ok is false when any
// segment has no match or the path is empty.
func (n *Node) Resolve(path ...string) (text string, ok bool) {
	if n == nil || len(path) == 0 {
		return "", false
	}

	cur := n
	for _, seg := range path {
		cur = cur.Child(seg)
		if cur == nil {
			return "", false
		}
	}
	return cur.InnerText, true
}

// Path splits a slash-separated element path such as
// "MSM/security/sharedKey/keyMaterial".
func Path(s string) []string {
	s = strings.Trim(s, "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}
