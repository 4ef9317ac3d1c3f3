// Package pyast implements ports.FeatureExtractor for Python source using
// tree-sitter.
package pyast

import (
	"context"
	"os"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/zerr"
)

// Extractor implements ports.FeatureExtractor.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractFile reads path and extracts its features.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (domain.CodeFeature, error) {
	//nolint:gosec // the path is chosen by the user
	code, err := os.ReadFile(path)
	if err != nil {
		return domain.CodeFeature{}, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
	}
	return e.Extract(ctx, code)
}

// Extract derives the version hint, imports, keywords and year of code.
// Source that cannot be understood yields VersionUnknown; the only errors
// come from ctx.
func (e *Extractor) Extract(ctx context.Context, code []byte) (domain.CodeFeature, error) {
	if err := ctx.Err(); err != nil {
		return domain.CodeFeature{}, err
	}

	feature := domain.CodeFeature{
		VersionHint: domain.VersionUnknown,
		Imports:     []string{},
		Keywords:    []string{},
	}

	text := string(code)
	if strings.TrimSpace(text) == "" {
		feature.Evidence = "empty source"
		return feature, nil
	}

	feature.ValidationYear = earliestYear(text)

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, code)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.CodeFeature{}, ctxErr
		}
		feature.Evidence = "parser failed: " + err.Error()
		feature.Imports = importsByLine(text)
		feature.Keywords = keywordsByText(text)
		return feature, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	s := &scan{code: code}
	s.walk(root)

	feature.VersionHint, feature.Evidence = detectVersion(text, root, s)

	if root.HasError() {
		feature.Imports = importsByLine(text)
		feature.Keywords = keywordsByText(text)
	} else {
		feature.Imports = domain.SortedSet(s.imports)
		feature.Keywords = domain.SortedSet(s.keywords)
	}
	return feature, nil
}

// detectVersion applies the legacy battery, then the parse outcome, then the
// parse diagnostics, in that order.
func detectVersion(text string, root *sitter.Node, s *scan) (version, evidence string) {
	for _, p := range legacyPatterns {
		if p.re.MatchString(text) {
			return domain.VersionLegacy, "legacy syntax: " + p.name
		}
	}

	if s.legacyNode != nil {
		return domain.VersionLegacy, "legacy " + strings.ReplaceAll(s.legacyNode.Type(), "_", " ") +
			" at line " + strconv.Itoa(int(s.legacyNode.StartPoint().Row)+1)
	}

	if !root.HasError() {
		for _, p := range modernPatterns {
			if p.re.MatchString(text) {
				return domain.VersionModern, "parsed; modern syntax: " + p.name
			}
		}
		return domain.VersionModern, "parsed"
	}

	line := 0
	if s.firstError != nil {
		line = int(s.firstError.StartPoint().Row)
	}
	failing := sourceLine(text, line)
	where := "parse error at line " + strconv.Itoa(line+1)

	if statementPrintRe.MatchString(failing) {
		return domain.VersionLegacy, where + ": missing parentheses in call to print"
	}
	if commaExceptRe.MatchString(failing) || commaExceptRe.MatchString(text) {
		return domain.VersionLegacy, where + ": comma except clause"
	}
	return domain.VersionUnknown, where
}

func earliestYear(text string) string {
	var earliest string
	for _, y := range yearRe.FindAllString(text, -1) {
		if earliest == "" || y < earliest {
			earliest = y
		}
	}
	return earliest
}

func sourceLine(text string, row int) string {
	lines := strings.Split(text, "\n")
	if row < 0 || row >= len(lines) {
		return ""
	}
	return lines[row]
}

// importsByLine is the fallback used when the tree contains errors.
func importsByLine(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		if m := importLineRe.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
		}
		if m := fromLineRe.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
		}
	}
	return domain.SortedSet(names)
}

func keywordsByText(text string) []string {
	keywords := triggerPathRe.FindAllString(text, -1)
	for _, m := range attrAccessRe.FindAllStringSubmatch(text, -1) {
		keywords = append(keywords, "attr:"+m[1])
	}
	return domain.SortedSet(keywords)
}
