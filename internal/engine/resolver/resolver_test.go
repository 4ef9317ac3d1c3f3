package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports/mocks"
	"go.trai.ch/lcr/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

// mapCache is a deterministic in-memory ports.IndexCache.
type mapCache map[string]domain.IndexEntry

func (c mapCache) Get(name string) (domain.IndexEntry, bool) {
	e, ok := c[name]
	return e, ok
}

func (c mapCache) Put(name string, entry domain.IndexEntry) {
	c[name] = entry
}

func testTable() domain.MappingTable {
	return domain.MappingTable{Packages: map[string]domain.PackageMapping{
		"numpy":   {Pip: []string{"numpy"}},
		"cv2":     {Pip: []string{"opencv-python"}, Apt: []string{"libgl1"}},
		"Tkinter": {Apt: []string{"python-tk"}},
		"MySQLdb": {Pip: []string{"mysqlclient"}, Apt: []string{"python-mysqldb"}},
		"custom":  {Pip: []string{"custom-package==1.0.0"}, Source: domain.UserKnowledgeSource},
	}}
}

type fixture struct {
	kb     *mocks.MockKnowledgeBase
	index  *mocks.MockPackageIndex
	logger *mocks.MockLogger
	cache  mapCache
	r      *resolver.Resolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		kb:     mocks.NewMockKnowledgeBase(ctrl),
		index:  mocks.NewMockPackageIndex(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		cache:  mapCache{},
	}
	f.kb.EXPECT().Table().Return(testTable()).AnyTimes()
	f.r = resolver.New(f.kb, f.index, f.cache, f.logger, "")
	return f
}

func TestResolve_StdlibIsNeverInstalled(t *testing.T) {
	f := newFixture(t)

	res, err := f.r.Resolve(context.Background(), []string{"os", "sys", "json", "collections", "urllib2"})
	require.NoError(t, err)

	assert.Empty(t, res.Pip)
	assert.Empty(t, res.Apt)
	assert.Empty(t, res.Unresolved)
	assert.Len(t, res.Reasons, 5)
	assert.Equal(t, resolver.ReasonStdlib, res.Reasons["os"])
}

func TestResolve_MappingTable(t *testing.T) {
	f := newFixture(t)

	res, err := f.r.Resolve(context.Background(), []string{"numpy", "cv2", "Tkinter", "MySQLdb", "custom", "numpy"})
	require.NoError(t, err)

	assert.Equal(t, []string{"custom-package==1.0.0", "numpy", "opencv-python"}, res.Pip)
	assert.Equal(t, []string{"libgl1", "python-mysqldb", "python-tk"}, res.Apt)
	assert.Empty(t, res.Unresolved)
	assert.Len(t, res.Reasons, 5)
	assert.Contains(t, res.Reasons["MySQLdb"], "system package")
	assert.Contains(t, res.Reasons["custom"], domain.UserKnowledgeSource)
}

func TestResolve_IndexConfirmedIsAptFirst(t *testing.T) {
	f := newFixture(t)
	f.index.EXPECT().Lookup(gomock.Any(), "Flask_Login").
		Return(domain.IndexEntry{Found: false, Name: "Flask_Login"}, nil)
	f.index.EXPECT().Lookup(gomock.Any(), "Flask-Login").
		Return(domain.IndexEntry{Found: true, Name: "Flask-Login", LargestArtifact: 50000}, nil)

	res, err := f.r.Resolve(context.Background(), []string{"Flask_Login"})
	require.NoError(t, err)

	assert.Empty(t, res.Pip)
	assert.Equal(t, []string{"python3-flask-login"}, res.Apt)
	assert.Contains(t, res.Reasons["Flask_Login"], "python3-flask-login")
}

func TestResolve_IndexAnswersAreMemoized(t *testing.T) {
	f := newFixture(t)
	f.index.EXPECT().Lookup(gomock.Any(), "requests2").
		Return(domain.IndexEntry{Found: true, Name: "requests2", LargestArtifact: 9000}, nil).
		Times(1)

	for range 3 {
		res, err := f.r.Resolve(context.Background(), []string{"requests2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"python3-requests2"}, res.Apt)
	}
	assert.Contains(t, f.cache, "requests2")
}

func TestResolve_Placeholders(t *testing.T) {
	t.Run("suggestion is followed", func(t *testing.T) {
		f := newFixture(t)
		f.index.EXPECT().Lookup(gomock.Any(), "sklearn2").
			Return(domain.IndexEntry{Found: true, Name: "sklearn2", Placeholder: true, Suggestion: "scikit-learn"}, nil)
		f.index.EXPECT().Lookup(gomock.Any(), "scikit-learn").
			Return(domain.IndexEntry{Found: true, Name: "scikit-learn", LargestArtifact: 1 << 20}, nil)

		res, err := f.r.Resolve(context.Background(), []string{"sklearn2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"python3-scikit-learn"}, res.Apt)
		assert.Empty(t, res.Unresolved)
	})

	t.Run("bare placeholder is unresolved", func(t *testing.T) {
		f := newFixture(t)
		f.index.EXPECT().Lookup(gomock.Any(), "stub").
			Return(domain.IndexEntry{Found: true, Name: "stub", Placeholder: true}, nil)

		res, err := f.r.Resolve(context.Background(), []string{"stub"})
		require.NoError(t, err)
		assert.Empty(t, res.Apt)
		assert.Equal(t, []string{"stub"}, res.Unresolved)
		assert.Contains(t, res.Reasons["stub"], "placeholder")
	})
}

func TestResolve_NotFound(t *testing.T) {
	f := newFixture(t)
	f.index.EXPECT().Lookup(gomock.Any(), "my_helpers").Return(domain.IndexEntry{Name: "my_helpers"}, nil)
	f.index.EXPECT().Lookup(gomock.Any(), "my-helpers").Return(domain.IndexEntry{Name: "my-helpers"}, nil)

	res, err := f.r.Resolve(context.Background(), []string{"my_helpers"})
	require.NoError(t, err)
	assert.Equal(t, []string{"my_helpers"}, res.Unresolved)
	assert.Equal(t, "not found in mapping table or package index", res.Reasons["my_helpers"])
}

func TestResolve_TransientErrorsAreNotMemoized(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.index.EXPECT().Lookup(gomock.Any(), "flaky").Return(domain.IndexEntry{}, errors.New("timeout")),
		f.index.EXPECT().Lookup(gomock.Any(), "flaky").Return(domain.IndexEntry{Found: true, Name: "flaky", LargestArtifact: 4096}, nil),
	)
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)

	res, err := f.r.Resolve(context.Background(), []string{"flaky"})
	require.NoError(t, err)
	assert.Equal(t, []string{"flaky"}, res.Unresolved)
	assert.Equal(t, "package index unavailable", res.Reasons["flaky"])
	assert.NotContains(t, f.cache, "flaky")

	res, err = f.r.Resolve(context.Background(), []string{"flaky"})
	require.NoError(t, err)
	assert.Equal(t, []string{"python3-flaky"}, res.Apt)
}

func TestResolve_CustomAptPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	kb := mocks.NewMockKnowledgeBase(ctrl)
	kb.EXPECT().Table().Return(domain.MappingTable{})
	index := mocks.NewMockPackageIndex(ctrl)
	index.EXPECT().Lookup(gomock.Any(), "yaml2").Return(domain.IndexEntry{Found: true, Name: "yaml2", LargestArtifact: 3000}, nil)

	r := resolver.New(kb, index, mapCache{}, mocks.NewMockLogger(ctrl), "python-")
	res, err := r.Resolve(context.Background(), []string{"yaml2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"python-yaml2"}, res.Apt)
}

func TestResolve_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.r.Resolve(ctx, []string{"numpy"})
	require.ErrorIs(t, err, context.Canceled)
}
