package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lcr/internal/adapters/config"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func noEnv(string) string { return "" }

func TestLoader_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))
	loader.FS = config.MapFSAdapter{FS: fstest.MapFS{}, Root: "/"}
	loader.Getenv = noEnv

	cfg, err := loader.Load("/work/project")
	require.NoError(t, err)

	assert.Equal(t, "/work/project", cfg.Root)
	assert.Equal(t, domain.DefaultIndexURL, cfg.Index.URL)
	assert.Equal(t, 3*time.Second, cfg.Index.Timeout)
	assert.Equal(t, domain.DefaultScoring(), cfg.Scoring)
	assert.Equal(t, "/work/project/.lcr/definitions", cfg.Abs(cfg.Paths.Definitions))
	assert.Equal(t, domain.DefaultRules(), cfg.ImageRules())
}

func TestLoader_WalksUpAndMerges(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))
	loader.FS = config.MapFSAdapter{Root: "/", FS: fstest.MapFS{
		"repo/lcr.yaml": {Data: []byte(`
version: "1"
paths:
  definitions: envs
index:
  timeout: 500ms
resolver:
  apt_prefix: python-
scoring:
  trigger: 90
rules:
  - id: py27-slim
    name: Python 2.7
    version: "2.7"
    image: python:2.7-slim
    prepend_python: true
`)},
		"repo/src/legacy": {Mode: os.ModeDir},
	}}
	loader.Getenv = noEnv

	cfg, err := loader.Load("/repo/src/legacy")
	require.NoError(t, err)

	assert.Equal(t, "/repo", cfg.Root)
	assert.Equal(t, filepath.Join("/repo", "envs"), cfg.Abs(cfg.Paths.Definitions))
	assert.Equal(t, domain.DefaultImagesPath(), cfg.Paths.Images, "unset paths keep defaults")
	assert.Equal(t, 500*time.Millisecond, cfg.Index.Timeout)
	assert.Equal(t, "python-", cfg.Resolver.AptPrefix)
	assert.Equal(t, 90, cfg.Scoring.Trigger)
	assert.Equal(t, 1000, cfg.Scoring.MajorMatch, "unset weights keep defaults")

	rules := cfg.ImageRules()
	require.Len(t, rules, 1)
	assert.True(t, rules[0].PrependPython)
}

func TestLoader_EnvOverrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))
	loader.FS = config.MapFSAdapter{FS: fstest.MapFS{}, Root: "/"}

	env := map[string]string{
		config.EnvIndexURL:     "https://mirror.example.com/pypi/",
		config.EnvIndexTimeout: "1.5",
		config.EnvOffline:      "true",
		config.EnvDocker:       "/usr/local/bin/podman",
	}
	loader.Getenv = func(k string) string { return env[k] }

	cfg, err := loader.Load("/w")
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.com/pypi", cfg.Index.URL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Index.Timeout)
	assert.True(t, cfg.Index.Offline)
	assert.Equal(t, "/usr/local/bin/podman", cfg.Docker.Binary)

	env[config.EnvOffline] = "maybe"
	_, err = loader.Load("/w")
	require.ErrorContains(t, err, domain.ErrConfigInvalid.Error())
	env[config.EnvOffline] = ""

	env[config.EnvIndexTimeout] = "soon"
	_, err = loader.Load("/w")
	require.ErrorContains(t, err, domain.ErrConfigInvalid.Error())
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"malformed yaml", "index: [unclosed", domain.ErrConfigParseFailed},
		{"invalid url", "index:\n  url: not a url\n", domain.ErrConfigInvalid},
		{"rule without image", "rules:\n  - id: x\n    version: \"3.x\"\n", domain.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := config.NewLoader(mocks.NewMockLogger(ctrl))
			loader.FS = config.MapFSAdapter{Root: "/", FS: fstest.MapFS{
				"p/lcr.yaml": {Data: []byte(tt.content)},
			}}
			loader.Getenv = noEnv

			_, err := loader.Load("/p")
			require.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestLoader_UnknownVersionWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	loader := config.NewLoader(log)
	loader.FS = config.MapFSAdapter{Root: "/", FS: fstest.MapFS{
		"p/lcr.yaml": {Data: []byte("version: \"9\"\n")},
	}}
	loader.Getenv = noEnv

	_, err := loader.Load("/p")
	require.NoError(t, err)
}

func TestLoader_OSFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName),
		[]byte("paths:\n  results: out\n"), domain.FilePerm))

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))
	loader.Getenv = noEnv

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.Abs(cfg.Paths.Results))
}
