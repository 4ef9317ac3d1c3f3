// Package dockerfile renders environment definitions into Dockerfiles.
package dockerfile

import (
	_ "embed"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"go.trai.ch/lcr/internal/adapters/atomicfile"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/zerr"
)

//go:embed Dockerfile.tmpl
var templateText string

// TrustedHostEnv is the pip variable listing hosts exempt from TLS checks.
const TrustedHostEnv = "PIP_TRUSTED_HOST"

var tmpl = template.Must(template.New("Dockerfile").
	Funcs(template.FuncMap{"shellquote": shellQuote}).
	Parse(templateText))

// Renderer implements ports.Renderer.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

type envVar struct {
	Key   string
	Value string
}

type view struct {
	Tag            string
	BaseImage      string
	UseArchiveRepo bool
	DebianRelease  string
	Env            []envVar
	AptPackages    []string
	PipPackages    []string
	PipConfig      *domain.PipConfig
	RunCommands    []string
}

// Render returns the Dockerfile for def.
func (r *Renderer) Render(def domain.EnvironmentDefinition) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, newView(def)); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "tag", def.Tag)
	}
	return b.String(), nil
}

// WriteFile renders def to <dir>/Dockerfile.<tag> and returns the path.
func (r *Renderer) WriteFile(dir string, def domain.EnvironmentDefinition) (string, error) {
	content, err := r.Render(def)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, domain.DockerfileName(def.Tag))
	if err := atomicfile.Write(path, []byte(content), domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrDockerfileWriteFailed.Error()), "path", path)
	}
	return path, nil
}

func newView(def domain.EnvironmentDefinition) view {
	v := view{
		Tag:            def.Tag,
		BaseImage:      def.BaseImage,
		UseArchiveRepo: def.UseArchiveRepo,
		DebianRelease:  def.DebianRelease,
		AptPackages:    def.AptPackages,
		PipPackages:    def.PipPackages,
		PipConfig:      def.PipConfig,
		RunCommands:    def.RunCommands,
	}
	if v.Tag == "" {
		v.Tag = "custom-image"
	}
	if v.BaseImage == "" {
		v.BaseImage = domain.DefaultBaseImage
	}
	if v.DebianRelease == "" {
		v.DebianRelease = domain.DefaultDebianRelease
	}

	env := maps.Clone(def.EnvVars)
	if env == nil {
		env = make(map[string]string)
	}
	hosts := def.TrustedHosts
	if hosts == nil {
		hosts = domain.DefaultTrustedHosts()
	}
	if _, ok := env[TrustedHostEnv]; !ok && len(hosts) > 0 {
		env[TrustedHostEnv] = strings.Join(hosts, " ")
	}
	for _, k := range slices.Sorted(maps.Keys(env)) {
		v.Env = append(v.Env, envVar{Key: k, Value: env[k]})
	}
	return v
}

// shellQuote single-quotes s unless it only holds characters the shell
// passes through unchanged.
func shellQuote(s string) string {
	if s != "" && !strings.ContainsFunc(s, unsafeShellRune) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("@%+=:,./-_[]", r):
		return false
	}
	return true
}
