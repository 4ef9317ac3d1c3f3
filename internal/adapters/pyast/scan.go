package pyast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// scan collects imports, keywords and diagnostics in one pass over the tree.
type scan struct {
	code []byte

	imports  []string
	keywords []string

	// firstError is the first ERROR or missing node in document order.
	firstError *sitter.Node

	// legacyNode is the first Python 2 only statement the grammar accepted.
	legacyNode *sitter.Node
}

func (s *scan) walk(n *sitter.Node) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "import_statement":
		s.importStatement(n)
	case "import_from_statement":
		s.importFromStatement(n)
	case "attribute":
		s.attribute(n)
	case "print_statement", "exec_statement":
		if s.legacyNode == nil {
			s.legacyNode = n
		}
	}

	if s.firstError == nil && (n.IsError() || n.IsMissing()) {
		s.firstError = n
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		s.walk(n.Child(i))
	}
}

// importStatement handles "import a.b" and "import a.b as c".
func (s *scan) importStatement(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			s.module(child.Content(s.code))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				s.module(name.Content(s.code))
			}
		}
	}
}

// importFromStatement handles "from a.b import c". Relative imports name
// local modules and are skipped.
func (s *scan) importFromStatement(n *sitter.Node) {
	module := n.ChildByFieldName("module_name")
	if module == nil || module.Type() != "dotted_name" {
		return
	}
	s.module(module.Content(s.code))
}

// module records the root of a dotted import path and any keywords in it.
func (s *scan) module(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	segments := strings.Split(path, ".")
	s.imports = append(s.imports, segments[0])
	s.dottedKeywords(segments)
}

func (s *scan) attribute(n *sitter.Node) {
	if name := n.ChildByFieldName("attribute"); name != nil {
		if _, ok := deprecatedAttrs[name.Content(s.code)]; ok {
			s.keywords = append(s.keywords, "attr:"+name.Content(s.code))
		}
	}

	path := n.Content(s.code)
	if _, ok := triggerPaths[path]; ok {
		s.keywords = append(s.keywords, path)
	}
}

func (s *scan) dottedKeywords(segments []string) {
	for i, seg := range segments {
		if _, ok := deprecatedAttrs[seg]; ok && i > 0 {
			s.keywords = append(s.keywords, "attr:"+seg)
		}
		prefix := strings.Join(segments[:i+1], ".")
		if _, ok := triggerPaths[prefix]; ok {
			s.keywords = append(s.keywords, prefix)
		}
	}
}
