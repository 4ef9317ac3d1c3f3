package domain

import (
	"regexp"
	"slices"
	"sync"

	"go.trai.ch/zerr"
)

// ImageRule declares a base runtime image the selector can choose.
type ImageRule struct {
	ID      string `json:"id" yaml:"id" validate:"required"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version" validate:"required"`
	Image   string `json:"image" yaml:"image" validate:"required"`

	// Libs are the libraries the image is built for; absent ones are penalized.
	Libs []string `json:"libs" yaml:"libs"`

	// Triggers are terms that strongly suggest this specific runtime.
	Triggers []string `json:"triggers" yaml:"triggers"`

	// PrependPython is set when the image has no python entrypoint and the run
	// command must name the interpreter.
	PrependPython bool `json:"prepend_python" yaml:"prepend_python"`

	// InstalledPackages is the known inventory of the image, empty until hydrated.
	InstalledPackages []string `json:"installed_packages,omitempty" yaml:"installed_packages"`
}

// Clone returns a deep copy of the rule.
func (r ImageRule) Clone() ImageRule {
	r.Libs = slices.Clone(r.Libs)
	r.Triggers = slices.Clone(r.Triggers)
	r.InstalledPackages = slices.Clone(r.InstalledPackages)
	return r
}

var (
	seriesVersionRe = regexp.MustCompile(`^(\d+)\.(\d+)`)
	seriesImageRe   = regexp.MustCompile(`(?:python:|py)(\d)\.?(\d{1,2})`)
	seriesNameRe    = regexp.MustCompile(`(\d+)\.(\d+)`)
)

// Series returns the major.minor runtime series of the rule, such as "3.6".
// It is taken from the version when it is specific, otherwise from the image
// tag (python:3.6-slim, lcr-py36-...) or the display name. It returns "" when
// nothing identifies a minor version.
func (r ImageRule) Series() string {
	if m := seriesVersionRe.FindStringSubmatch(r.Version); m != nil {
		return m[1] + "." + m[2]
	}
	if m := seriesImageRe.FindStringSubmatch(r.Image); m != nil {
		return m[1] + "." + m[2]
	}
	if m := seriesNameRe.FindStringSubmatch(r.Name); m != nil {
		return m[1] + "." + m[2]
	}
	return ""
}

// DefaultRules returns the built-in rule set, most specific first and the most
// generic modern runtime last.
func DefaultRules() []ImageRule {
	return []ImageRule{
		{
			ID:            "py27-cv2",
			Name:          "Python 2.7 + OpenCV 2.x",
			Version:       "2.7",
			Libs:          []string{"cv2", "opencv", "numpy"},
			Image:         "lcr-py27-cv-apt",
			PrependPython: false,
			Triggers:      []string{"cv2.cv", "cv2.bgsegm"},
		},
		{
			ID:            "py27-slim",
			Name:          "Python 2.7 (Slim)",
			Version:       "2.7",
			Image:         "python:2.7-slim",
			PrependPython: true,
		},
		{
			ID:            "py36-ds",
			Name:          "Python 3.6 Data Science",
			Version:       "3.x",
			Libs:          []string{"sklearn", "pandas", "numpy"},
			Image:         "lcr-py36-ml-classic",
			PrependPython: false,
			Triggers:      []string{"sklearn", "pandas"},
		},
		{
			ID:            "py310-slim",
			Name:          "Python 3.10 (Latest)",
			Version:       "3.x",
			Image:         "python:3.10-slim",
			PrependPython: true,
		},
	}
}

// FallbackRule returns the most generic built-in rule.
func FallbackRule() ImageRule {
	rules := DefaultRules()
	return rules[len(rules)-1]
}

// RuleSet is the ordered set of active image rules keyed by id.
// It is safe for concurrent use; order of insertion is preserved.
type RuleSet struct {
	mu    sync.RWMutex
	rules []ImageRule
}

// NewRuleSet creates a rule set from rules, rejecting duplicate ids.
func NewRuleSet(rules ...ImageRule) (*RuleSet, error) {
	rs := &RuleSet{}
	for _, r := range rules {
		if err := rs.Add(r); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// Add appends a rule. It fails with ErrRuleAlreadyExists if the id is taken.
func (s *RuleSet) Add(rule ImageRule) error {
	if err := Validate(rule); err != nil {
		return zerr.With(zerr.Wrap(err, ErrInvalidRule.Error()), "rule_id", rule.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(rule.ID) >= 0 {
		return zerr.With(ErrRuleAlreadyExists, "rule_id", rule.ID)
	}
	s.rules = append(s.rules, rule.Clone())
	return nil
}

// Remove deletes the rule with the given id and reports whether it existed.
func (s *RuleSet) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.rules = slices.Delete(s.rules, i, i+1)
	return true
}

// Get returns a copy of the rule with the given id.
func (s *RuleSet) Get(id string) (ImageRule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return ImageRule{}, false
	}
	return s.rules[i].Clone(), true
}

// Has reports whether a rule with the given id is active.
func (s *RuleSet) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// All returns a copy of the active rules in declaration order.
func (s *RuleSet) All() []ImageRule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ImageRule, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the number of active rules.
func (s *RuleSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}

func (s *RuleSet) indexOf(id string) int {
	return slices.IndexFunc(s.rules, func(r ImageRule) bool { return r.ID == id })
}
