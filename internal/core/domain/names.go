package domain

import (
	"strings"
)

// NormalizeName folds a package name for comparison: lowercase with '-', '_' and '.' removed.
// "scikit-image", "scikit_image" and "Scikit.Image" all normalize to "scikitimage".
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case '-', '_', '.':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DistroName converts a package name to distro package naming: lowercase with '_' and '.' as '-'.
func DistroName(name string) string {
	r := strings.NewReplacer("_", "-", ".", "-")
	return r.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// IsRuntimePackage reports whether an apt package name looks like a Python runtime package
// (python-foo, python3-foo), which makes a pip install of the same capability redundant.
func IsRuntimePackage(apt string) bool {
	return strings.HasPrefix(apt, "python-") || strings.HasPrefix(apt, "python3-")
}

// specifierOps are the requirement operators recognized by SplitSpecifier, longest first.
var specifierOps = []string{"===", "==", ">=", "<=", "~=", "!=", ">", "<"}

// SplitSpecifier splits a requirement such as "numpy==1.19.5" into its name and version
// specifier ("numpy", "==1.19.5"). A bare name returns an empty specifier.
func SplitSpecifier(requirement string) (name, specifier string) {
	req := strings.TrimSpace(requirement)
	cut := -1
	for _, op := range specifierOps {
		if i := strings.Index(req, op); i >= 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	if cut < 0 {
		return req, ""
	}
	return strings.TrimSpace(req[:cut]), strings.TrimSpace(req[cut:])
}

// ExactPin returns the version of an "==" specifier, or "" for any other specifier.
func ExactPin(specifier string) string {
	if strings.HasPrefix(specifier, "===") {
		return strings.TrimPrefix(specifier, "===")
	}
	if strings.HasPrefix(specifier, "==") {
		return strings.TrimPrefix(specifier, "==")
	}
	return ""
}
