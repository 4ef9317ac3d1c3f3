package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lcr/internal/app"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	cfg       *domain.Config
	rules     *domain.RuleSet
	logger    *mocks.MockLogger
	extractor *mocks.MockFeatureExtractor
	knowledge *mocks.MockKnowledgeBase
	resolver  *mocks.MockPackageResolver
	selector  *mocks.MockRuntimeSelector
	synth     *mocks.MockSynthesizer
	txn       *mocks.MockTransactionManager
	store     *mocks.MockDefinitionStore
	renderer  *mocks.MockRenderer
	docker    *mocks.MockContainerRuntime
	planner   *mocks.MockRunPlanner
	history   *mocks.MockHistoryStore
	stdout    *bytes.Buffer
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	rules, err := domain.NewRuleSet(domain.DefaultRules()...)
	require.NoError(t, err)

	cfg := domain.DefaultConfig()
	cfg.Root = t.TempDir()

	f := &fixture{
		cfg:       &cfg,
		rules:     rules,
		logger:    mocks.NewMockLogger(ctrl),
		extractor: mocks.NewMockFeatureExtractor(ctrl),
		knowledge: mocks.NewMockKnowledgeBase(ctrl),
		resolver:  mocks.NewMockPackageResolver(ctrl),
		selector:  mocks.NewMockRuntimeSelector(ctrl),
		synth:     mocks.NewMockSynthesizer(ctrl),
		txn:       mocks.NewMockTransactionManager(ctrl),
		store:     mocks.NewMockDefinitionStore(ctrl),
		renderer:  mocks.NewMockRenderer(ctrl),
		docker:    mocks.NewMockContainerRuntime(ctrl),
		planner:   mocks.NewMockRunPlanner(ctrl),
		history:   mocks.NewMockHistoryStore(ctrl),
		stdout:    &bytes.Buffer{},
	}
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	f.app = app.New(app.Deps{
		Config:      f.cfg,
		Logger:      f.logger,
		Rules:       f.rules,
		Extractor:   f.extractor,
		Knowledge:   f.knowledge,
		Resolver:    f.resolver,
		Selector:    f.selector,
		Synthesizer: f.synth,
		Txn:         f.txn,
		Store:       f.store,
		Renderer:    f.renderer,
		Docker:      f.docker,
		Planner:     f.planner,
		History:     f.history,
	}).WithOutput(f.stdout, &bytes.Buffer{})
	return f
}

var legacyFeature = domain.CodeFeature{
	VersionHint: domain.VersionLegacy,
	Imports:     []string{"cv2", "numpy", "os"},
	Keywords:    []string{"cv2.cv"},
	Evidence:    "print statement",
}

func TestApp_Analyze(t *testing.T) {
	f := newFixture(t)
	f.extractor.EXPECT().ExtractFile(gomock.Any(), "old.py").Return(legacyFeature, nil).Times(2)

	require.NoError(t, f.app.Analyze(context.Background(), "old.py", app.OutputOptions{}))
	out := f.stdout.String()
	assert.Contains(t, out, "2.7")
	assert.Contains(t, out, "cv2, numpy, os")
	assert.Contains(t, out, "print statement")

	f.stdout.Reset()
	require.NoError(t, f.app.Analyze(context.Background(), "old.py", app.OutputOptions{JSON: true}))
	var got domain.CodeFeature
	require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &got))
	assert.Equal(t, legacyFeature, got)
}

func TestApp_Analyze_ExtractError(t *testing.T) {
	f := newFixture(t)
	f.extractor.EXPECT().ExtractFile(gomock.Any(), "missing.py").
		Return(domain.CodeFeature{}, zerr.With(domain.ErrSourceReadFailed, "path", "missing.py"))

	err := f.app.Analyze(context.Background(), "missing.py", app.OutputOptions{})
	require.ErrorIs(t, err, domain.ErrSourceReadFailed)
}

func TestApp_Resolve(t *testing.T) {
	f := newFixture(t)
	f.extractor.EXPECT().ExtractFile(gomock.Any(), "old.py").Return(legacyFeature, nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), legacyFeature.Imports).Return(domain.PackageResolution{
		Pip:        []string{"numpy"},
		Apt:        []string{"python-opencv"},
		Unresolved: []string{},
		Reasons: map[string]string{
			"os":    "standard library",
			"cv2":   "mapping table: provided by system package python-opencv",
			"numpy": "mapping table: pip numpy",
		},
	}, nil)

	require.NoError(t, f.app.Resolve(context.Background(), "old.py", app.OutputOptions{}))
	out := f.stdout.String()
	assert.Contains(t, out, "python-opencv")
	assert.Contains(t, out, "standard library")
	assert.Less(t, bytes.Index(f.stdout.Bytes(), []byte("cv2  ")), bytes.Index(f.stdout.Bytes(), []byte("os  ")))
}

func TestApp_Select(t *testing.T) {
	f := newFixture(t)
	rule, _ := f.rules.Get("py27-cv2")
	f.extractor.EXPECT().ExtractFile(gomock.Any(), "old.py").Return(legacyFeature, nil)
	f.selector.EXPECT().Select(legacyFeature.SearchTerms(), domain.VersionLegacy).Return(domain.Selection{
		Rule:    rule,
		Score:   1130,
		Reasons: []string{"+1000 python 2 matches the code", "+30 trigger cv2.cv"},
		Scores:  map[string]int{"py27-cv2": 1130, "py27-slim": 1050, "py310-slim": -10000},
	})

	require.NoError(t, f.app.Select(context.Background(), "old.py", app.OutputOptions{}))
	out := f.stdout.String()
	assert.Contains(t, out, "Python 2.7 + OpenCV 2.x (py27-cv2, lcr-py27-cv-apt) score 1130")
	assert.Contains(t, out, "+30 trigger cv2.cv")
	assert.Less(t, bytes.Index(f.stdout.Bytes(), []byte("py27-slim ")), bytes.Index(f.stdout.Bytes(), []byte("py310-slim ")))
}

func TestApp_Runtimes(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.app.Runtimes(app.OutputOptions{}))
	out := f.stdout.String()
	assert.Contains(t, out, "py36-ds")
	assert.Contains(t, out, "python:3.10-slim")

	f.stdout.Reset()
	require.NoError(t, f.app.Runtimes(app.OutputOptions{JSON: true}))
	var rules []domain.ImageRule
	require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &rules))
	assert.Len(t, rules, 4)
}

func TestApp_Synthesize_UsesSelectedBase(t *testing.T) {
	f := newFixture(t)
	rule, _ := f.rules.Get("py27-cv2")
	def := domain.EnvironmentDefinition{ID: "lcr-py27-cv2-0000abcd", Tag: "lcr-py27-cv2-0000abcd", BaseImage: "lcr-py27-cv-apt"}

	f.extractor.EXPECT().ExtractFile(gomock.Any(), "old.py").Return(legacyFeature, nil)
	f.selector.EXPECT().Select(gomock.Any(), gomock.Any()).Return(domain.Selection{Rule: rule})
	f.synth.EXPECT().Synthesize(gomock.Any(), legacyFeature, "py27-cv2", domain.SynthesisOptions{Name: "mine"}).Return(def, nil)

	require.NoError(t, f.app.Synthesize(context.Background(), "old.py", app.SynthesizeOptions{Name: "mine"}))
	assert.Contains(t, f.stdout.String(), `"tag": "lcr-py27-cv2-0000abcd"`)
}

func TestApp_Synthesize_ExplicitBase(t *testing.T) {
	f := newFixture(t)
	f.extractor.EXPECT().ExtractFile(gomock.Any(), "old.py").Return(legacyFeature, nil)
	f.synth.EXPECT().Synthesize(gomock.Any(), legacyFeature, "py27-slim", gomock.Any()).
		Return(domain.EnvironmentDefinition{Tag: "x", BaseImage: "python:2.7-slim"}, nil)

	require.NoError(t, f.app.Synthesize(context.Background(), "old.py", app.SynthesizeOptions{Base: "py27-slim"}))
}

func createDefinition() domain.EnvironmentDefinition {
	return domain.EnvironmentDefinition{
		ID:          "lcr-py27-slim-1a2b3c4d",
		Tag:         "lcr-py27-slim-1a2b3c4d",
		Name:        "Python 2.7 (Slim) + requests",
		BaseImage:   "python:2.7-slim",
		PipPackages: []string{"requests==2.27.1"},
	}
}

func TestApp_Create_Success(t *testing.T) {
	f := newFixture(t)
	def := createDefinition()
	imagesDir := f.cfg.Abs(f.cfg.Paths.Images)
	dockerfile := filepath.Join(imagesDir, "Dockerfile.lcr_py27_slim_1a2b3c4d")

	gomock.InOrder(
		f.docker.EXPECT().Ping(gomock.Any()).Return(nil),
		f.extractor.EXPECT().ExtractFile(gomock.Any(), "old.py").Return(legacyFeature, nil),
		f.synth.EXPECT().Synthesize(gomock.Any(), legacyFeature, "py27-slim", gomock.Any()).Return(def, nil),
		f.txn.EXPECT().SaveProvisional(def.ID, def).Return("/defs/x.json", nil),
		f.renderer.EXPECT().WriteFile(imagesDir, def).Return(dockerfile, nil),
		f.docker.EXPECT().Build(gomock.Any(), def.Tag, dockerfile, imagesDir, gomock.Any(), gomock.Any()).Return(nil),
		f.txn.EXPECT().Commit(def.ID),
	)

	require.NoError(t, f.app.Create(context.Background(), "old.py", app.SynthesizeOptions{Base: "py27-slim"}))
}

func TestApp_Create_DockerUnavailable(t *testing.T) {
	f := newFixture(t)
	f.docker.EXPECT().Ping(gomock.Any()).Return(domain.ErrDockerUnavailable)

	err := f.app.Create(context.Background(), "old.py", app.SynthesizeOptions{})
	require.ErrorIs(t, err, domain.ErrDockerUnavailable)
}

func TestApp_Create_BuildFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	def := createDefinition()
	imagesDir := f.cfg.Abs(f.cfg.Paths.Images)
	require.NoError(t, os.MkdirAll(imagesDir, domain.DirPerm))
	dockerfile := filepath.Join(imagesDir, "Dockerfile.lcr_py27_slim_1a2b3c4d")
	require.NoError(t, os.WriteFile(dockerfile, []byte("FROM x\n"), domain.FilePerm))

	buildErr := zerr.With(domain.ErrBuildFailed, "tag", def.Tag)
	gomock.InOrder(
		f.docker.EXPECT().Ping(gomock.Any()).Return(nil),
		f.extractor.EXPECT().ExtractFile(gomock.Any(), "old.py").Return(legacyFeature, nil),
		f.synth.EXPECT().Synthesize(gomock.Any(), gomock.Any(), "py27-slim", gomock.Any()).Return(def, nil),
		f.txn.EXPECT().SaveProvisional(def.ID, def).Return("/defs/x.json", nil),
		f.renderer.EXPECT().WriteFile(imagesDir, def).Return(dockerfile, nil),
		f.docker.EXPECT().Build(gomock.Any(), def.Tag, dockerfile, imagesDir, gomock.Any(), gomock.Any()).Return(buildErr),
		f.txn.EXPECT().Rollback(def.ID),
	)

	err := f.app.Create(context.Background(), "old.py", app.SynthesizeOptions{Base: "py27-slim"})
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.NoFileExists(t, dockerfile)
}

func TestApp_Create_ConflictStopsBeforeRender(t *testing.T) {
	f := newFixture(t)
	def := createDefinition()

	f.docker.EXPECT().Ping(gomock.Any()).Return(nil)
	f.extractor.EXPECT().ExtractFile(gomock.Any(), "old.py").Return(legacyFeature, nil)
	f.synth.EXPECT().Synthesize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(def, nil)
	f.txn.EXPECT().SaveProvisional(def.ID, def).Return("", zerr.With(domain.ErrDefinitionConflict, "id", def.ID))

	err := f.app.Create(context.Background(), "old.py", app.SynthesizeOptions{Base: "py27-slim"})
	require.ErrorIs(t, err, domain.ErrDefinitionConflict)
}

func TestApp_Render(t *testing.T) {
	f := newFixture(t)
	def := createDefinition()
	f.store.EXPECT().Load().Return([]domain.EnvironmentDefinition{def}, nil).Times(3)
	f.renderer.EXPECT().Render(def).Return("FROM python:2.7-slim\n", nil)

	require.NoError(t, f.app.Render(context.Background(), def.Tag, false))
	assert.Equal(t, "FROM python:2.7-slim\n", f.stdout.String())

	f.renderer.EXPECT().WriteFile(f.cfg.Abs(f.cfg.Paths.Images), def).Return("/images/Dockerfile.x", nil)
	require.NoError(t, f.app.Render(context.Background(), def.ID, true))

	err := f.app.Render(context.Background(), "nope", false)
	require.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestApp_Definitions(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Load().Return([]domain.EnvironmentDefinition{createDefinition()}, nil)

	require.NoError(t, f.app.Definitions(app.OutputOptions{}))
	assert.Contains(t, f.stdout.String(), "lcr-py27-slim-1a2b3c4d")
}

func TestApp_Learn(t *testing.T) {
	f := newFixture(t)
	f.knowledge.EXPECT().SaveUserKnowledge("custom_lib", domain.PackageMapping{
		Pip: []string{"custom-package==1.0.0"},
		Apt: []string{},
	}).Return(nil)

	require.NoError(t, f.app.Learn("custom_lib", []string{"custom-package==1.0.0"}, nil))
}

func runConfig() domain.RunConfig {
	return domain.RunConfig{
		Image:       "python:2.7-slim",
		RuntimeName: "Python 2.7 (Slim)",
		Volumes: []domain.Mount{
			{Host: "/src", Bind: domain.ContainerInputDir, Mode: "ro"},
			{Host: "/out/20240309_140507", Bind: domain.ContainerOutputDir, Mode: "rw"},
		},
		WorkingDir:  domain.ContainerOutputDir,
		Command:     []string{"python", "/app/input/old.py"},
		ScriptName:  "old.py",
		HostWorkDir: "/out/20240309_140507",
	}
}

func TestApp_Run_RecordsHistory(t *testing.T) {
	f := newFixture(t)
	rule, _ := f.rules.Get("py27-slim")
	cfg := runConfig()

	gomock.InOrder(
		f.extractor.EXPECT().ExtractFile(gomock.Any(), "old.py").Return(legacyFeature, nil),
		f.selector.EXPECT().Select(gomock.Any(), domain.VersionLegacy).Return(domain.Selection{Rule: rule}),
		f.docker.EXPECT().Ping(gomock.Any()).Return(nil),
		f.planner.EXPECT().Plan(rule, "old.py", domain.RunOptions{DataDir: "data"}).Return(cfg, nil),
		f.docker.EXPECT().Run(gomock.Any(), cfg, gomock.Any(), gomock.Any()).Return(nil),
		f.history.EXPECT().Append(domain.HistoryRecord{
			ScriptPath:  filepath.Join("/src", "old.py"),
			RuntimeName: "Python 2.7 (Slim)",
			ImageTag:    "python:2.7-slim",
			OutputDir:   "/out/20240309_140507",
			Status:      domain.RunStatusSuccess,
		}).Return(domain.HistoryRecord{ID: "1"}, nil),
	)

	require.NoError(t, f.app.Run(context.Background(), "old.py", app.RunOptions{DataDir: "data"}))
}

func TestApp_Run_FailureIsRecorded(t *testing.T) {
	f := newFixture(t)
	rule, _ := f.rules.Get("py36-ds")
	cfg := runConfig()
	runErr := zerr.With(domain.ErrRunFailed, "exit_code", 1)

	f.docker.EXPECT().Ping(gomock.Any()).Return(nil)
	f.planner.EXPECT().Plan(rule, "old.py", gomock.Any()).Return(cfg, nil)
	f.docker.EXPECT().Run(gomock.Any(), cfg, gomock.Any(), gomock.Any()).Return(runErr)
	f.history.EXPECT().Append(gomock.Any()).DoAndReturn(func(rec domain.HistoryRecord) (domain.HistoryRecord, error) {
		assert.Equal(t, domain.RunStatusFailed, rec.Status)
		return rec, nil
	})

	err := f.app.Run(context.Background(), "old.py", app.RunOptions{Runtime: "py36-ds"})
	require.ErrorIs(t, err, domain.ErrRunFailed)
}

func TestApp_Run_UnknownRuntime(t *testing.T) {
	f := newFixture(t)

	err := f.app.Run(context.Background(), "old.py", app.RunOptions{Runtime: "py99"})
	require.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestApp_History(t *testing.T) {
	f := newFixture(t)
	f.history.EXPECT().List().Return([]domain.HistoryRecord{
		{ID: "2", Timestamp: "2024-03-09T14:05:07Z", Status: domain.RunStatusFailed, ScriptPath: "b.py"},
		{ID: "1", Timestamp: "2024-03-08T10:00:00Z", Status: domain.RunStatusSuccess, ScriptPath: "a.py"},
	}, nil)

	require.NoError(t, f.app.History(app.OutputOptions{}))
	out := f.stdout.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("b.py")), bytes.Index([]byte(out), []byte("a.py")))
}

func TestApp_Doctor(t *testing.T) {
	f := newFixture(t)
	f.docker.EXPECT().Ping(gomock.Any()).Return(nil)
	f.docker.EXPECT().ImageExists(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tag string) (bool, error) {
		return tag != "lcr-py27-cv-apt", nil
	}).Times(4)
	f.logger.EXPECT().Warn("1 of 4 runtime images are not available locally")

	require.NoError(t, f.app.Doctor(context.Background(), app.OutputOptions{}))
	out := f.stdout.String()
	assert.Contains(t, out, "docker daemon reachable")
	assert.Contains(t, out, "missing")
}

func TestApp_Doctor_JSON(t *testing.T) {
	f := newFixture(t)
	f.docker.EXPECT().Ping(gomock.Any()).Return(nil)
	f.docker.EXPECT().ImageExists(gomock.Any(), gomock.Any()).Return(true, nil).Times(4)

	require.NoError(t, f.app.Doctor(context.Background(), app.OutputOptions{JSON: true}))
	var statuses []app.ImageStatus
	require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &statuses))
	require.Len(t, statuses, 4)
	assert.Equal(t, "py27-cv2", statuses[0].RuleID)
	assert.True(t, statuses[0].Present)
}

func TestApp_Doctor_DaemonDown(t *testing.T) {
	f := newFixture(t)
	f.docker.EXPECT().Ping(gomock.Any()).Return(domain.ErrDockerUnavailable)

	err := f.app.Doctor(context.Background(), app.OutputOptions{})
	require.ErrorIs(t, err, domain.ErrDockerUnavailable)
	assert.Contains(t, f.stdout.String(), "unreachable")
}
