// Package profile holds the element tree of a WLAN profile document and a
// path resolver over it.
package profile

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrMalformedDocument = errors.New("malformed profile document")

// Node is one element of a profile document. Name is the local name with the
// namespace dropped. InnerText is the character data of the element and every
// descendant, in document order, without markup.
type Node struct {
	Name      string
	InnerText string
	Children  []*Node
}

// Parse builds the element tree of doc and returns its root element.
func Parse(doc string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(doc))
	// The text is already decoded from the service's UTF-16; an encoding
	// named in the prolog must not be applied again.
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) {
		return r, nil
	}

	var (
		root  *Node
		stack []*node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{Node: &Node{Name: t.Name.Local}}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrMalformedDocument)
				}
				root = n.Node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n.Node)
			}
			stack = append(stack, n)

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			for _, open := range stack {
				open.inner.Write(t)
			}

		case xml.EndElement:
			top := stack[len(stack)-1]
			top.InnerText = top.inner.String()
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}
	return root, nil
}

// node carries the text accumulator of an element still open in Parse.
type node struct {
	*Node
	inner strings.Builder
}
