package dockerfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lcr/internal/adapters/dockerfile"
	"go.trai.ch/lcr/internal/core/domain"
)

func TestRenderer_Render(t *testing.T) {
	tests := []struct {
		name       string
		goldenName string
		def        domain.EnvironmentDefinition
	}{
		{
			name:       "legacy runtime on archived debian",
			goldenName: "legacy_archive",
			def: domain.EnvironmentDefinition{
				Tag:            "lcr-py27-slim-1a2b3c4d",
				BaseImage:      "python:2.7-slim",
				UseArchiveRepo: true,
				DebianRelease:  "stretch",
				EnvVars: map[string]string{
					"PYTHONUNBUFFERED":        "1",
					"PYTHONDONTWRITEBYTECODE": "1",
				},
				AptPackages: []string{"python-tk", "libgl1"},
				PipPackages: []string{"requests==2.27.1", "scikit-image>=0.14"},
				RunCommands: []string{"mkdir -p /app/output"},
			},
		},
		{
			name:       "private registry",
			goldenName: "private_registry",
			def: domain.EnvironmentDefinition{
				Tag:         "my-env:1.0",
				BaseImage:   "python:3.10-slim",
				PipPackages: []string{"requests", "numpy"},
				PipConfig: &domain.PipConfig{
					IndexURL:    "https://pypi.my-company.com/simple",
					TrustedHost: "pypi.my-company.com",
				},
			},
		},
		{
			name:       "minimal definition",
			goldenName: "minimal",
			def:        domain.EnvironmentDefinition{TrustedHosts: []string{}},
		},
	}

	r := dockerfile.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.def)
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, []byte(out))
		})
	}
}

func TestRenderer_RegistryFlagsOnlyWithPipConfig(t *testing.T) {
	r := dockerfile.New()
	def := domain.EnvironmentDefinition{
		Tag:         "my-env:1.0",
		BaseImage:   "python:3.8",
		PipPackages: []string{"requests"},
	}

	out, err := r.Render(def)
	require.NoError(t, err)
	assert.NotContains(t, out, "--index-url")
	assert.NotContains(t, out, "--trusted-host")

	def.PipConfig = &domain.PipConfig{IndexURL: "https://pypi.my-company.com/simple"}
	out, err = r.Render(def)
	require.NoError(t, err)
	assert.Contains(t, out, "--index-url https://pypi.my-company.com/simple")
	assert.NotContains(t, out, "--trusted-host")
}

func TestRenderer_ExplicitTrustedHostEnvWins(t *testing.T) {
	r := dockerfile.New()
	out, err := r.Render(domain.EnvironmentDefinition{
		Tag:       "x",
		BaseImage: "python:3.8",
		EnvVars:   map[string]string{dockerfile.TrustedHostEnv: "mirror.local"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `ENV PIP_TRUSTED_HOST="mirror.local"`)
	assert.NotContains(t, out, "pypi.org")
}

func TestRenderer_QuotesSpecifiers(t *testing.T) {
	r := dockerfile.New()
	out, err := r.Render(domain.EnvironmentDefinition{
		Tag:         "x",
		BaseImage:   "python:3.8",
		PipPackages: []string{"pkg!=2,<3", "it's"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "'pkg!=2,<3'")
	assert.Contains(t, out, `'it'\''s'`)
}

func TestRenderer_WriteFile(t *testing.T) {
	dir := t.TempDir()
	r := dockerfile.New()
	def := domain.EnvironmentDefinition{Tag: "lcr-py36:1", BaseImage: "python:3.6-slim"}

	path, err := r.WriteFile(dir, def)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Dockerfile.lcr_py36_1"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := r.Render(def)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))

	t.Run("target is not a directory", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), domain.FilePerm))

		_, err := r.WriteFile(filepath.Join(blocker, "images"), def)
		require.ErrorContains(t, err, domain.ErrDockerfileWriteFailed.Error())
	})
}
