package pyast

import "regexp"

type namedPattern struct {
	name string
	re   *regexp.Regexp
}

// legacyPatterns are constructs only valid in Python 2. Any match decides the
// version without parsing.
var legacyPatterns = []namedPattern{
	{"print statement", regexp.MustCompile(`print\s+["']`)},
	{"comma except clause", commaExceptRe},
	{"comma raise", regexp.MustCompile(`raise\s+\w+\s*,`)},
	{"exec statement", regexp.MustCompile(`exec\s+["']`)},
	{"<> operator", regexp.MustCompile(`<>`)},
	{"backtick repr", regexp.MustCompile("`.*`")},
	{"coding declaration", regexp.MustCompile(`#\s*-\*-\s*coding:\s*utf-8\s*-\*-`)},
}

var commaExceptRe = regexp.MustCompile(`except\s+\w+\s*,\s*\w+:`)

// modernPatterns only refine the evidence of a successful parse.
var modernPatterns = []namedPattern{
	{"print call", regexp.MustCompile(`print\s*\(`)},
	{"async def", regexp.MustCompile(`async\s+def`)},
	{"await", regexp.MustCompile(`await\s+`)},
	{"return annotation", regexp.MustCompile(`\)\s*->`)},
	{"property setter", regexp.MustCompile(`@\w+\.setter`)},
	{"nonlocal", regexp.MustCompile(`nonlocal\s+`)},
	{"yield from", regexp.MustCompile(`yield\s+from`)},
}

var (
	statementPrintRe = regexp.MustCompile(`^\s*print\s+[^\s(=]`)
	yearRe           = regexp.MustCompile(`20[1-2][0-9]`)

	importLineRe = regexp.MustCompile(`^\s*import\s+([a-zA-Z_][a-zA-Z0-9_]*)`)
	fromLineRe   = regexp.MustCompile(`^\s*from\s+([a-zA-Z_][a-zA-Z0-9_]*)\s+import`)

	triggerPathRe = regexp.MustCompile(`\bcv2\.(?:cv|bgsegm)\b`)
	attrAccessRe  = regexp.MustCompile(`\.(grid_search|cross_validation)\b`)
)

// deprecatedAttrs are attribute names reported as attr:<name> keywords.
var deprecatedAttrs = map[string]struct{}{
	"grid_search":      {},
	"cross_validation": {},
}

// triggerPaths are dotted paths reported verbatim as keywords.
var triggerPaths = map[string]struct{}{
	"cv2.cv":     {},
	"cv2.bgsegm": {},
}
