package txn_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lcr/internal/adapters/definitions"
	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/lcr/internal/core/ports/mocks"
	"go.trai.ch/lcr/internal/engine/txn"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func testDefinition() domain.EnvironmentDefinition {
	return domain.EnvironmentDefinition{
		Tag:               "test-image:1.0",
		BaseImage:         "python:3.8",
		AptPackages:       []string{},
		PipPackages:       []string{"requests"},
		InstalledPackages: []string{"numpy", "requests"},
		EnvVars:           map[string]string{},
		RunCommands:       []string{},
	}
}

type fixture struct {
	store  *definitions.Store
	rules  *domain.RuleSet
	logger *mocks.MockLogger
	m      *txn.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	rules, err := domain.NewRuleSet(domain.DefaultRules()...)
	require.NoError(t, err)

	log := mocks.NewMockLogger(ctrl)
	store := definitions.NewStore(t.TempDir(), log)
	return &fixture{store: store, rules: rules, logger: log, m: txn.New(store, rules, log)}
}

func TestSaveThenCommit(t *testing.T) {
	f := newFixture(t)

	path, err := f.m.SaveProvisional("test_env", testDefinition())
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.True(t, f.m.IsPending("test_env"))
	assert.Equal(t, domain.TxPending, f.m.State("test_env"))

	rule, ok := f.rules.Get("test_env")
	require.True(t, ok)
	assert.Equal(t, []string{"numpy", "requests"}, rule.InstalledPackages)

	f.m.Commit("test_env")
	assert.False(t, f.m.IsPending("test_env"))
	assert.Equal(t, domain.TxCommitted, f.m.State("test_env"))
	assert.FileExists(t, path)
	assert.True(t, f.rules.Has("test_env"))
}

func TestSaveThenRollback(t *testing.T) {
	f := newFixture(t)

	path, err := f.m.SaveProvisional("test_env", testDefinition())
	require.NoError(t, err)

	f.m.Rollback("test_env")
	assert.NoFileExists(t, path)
	assert.False(t, f.rules.Has("test_env"))
	assert.False(t, f.m.IsPending("test_env"))
	assert.Equal(t, domain.TxRolledBack, f.m.State("test_env"))

	t.Run("is idempotent", func(t *testing.T) {
		f.logger.EXPECT().Warn(gomock.Any())
		f.m.Rollback("test_env")
		assert.Equal(t, domain.TxRolledBack, f.m.State("test_env"))
	})
}

func TestSaveProvisional_Conflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.m.SaveProvisional("py27-slim", testDefinition())
	require.ErrorIs(t, err, domain.ErrDefinitionConflict)
	assert.NoFileExists(t, f.store.Path("py27-slim"))
	assert.Equal(t, domain.TxAbsent, f.m.State("py27-slim"))

	_, err = f.m.SaveProvisional("test_env", testDefinition())
	require.NoError(t, err)
	_, err = f.m.SaveProvisional("test_env", testDefinition())
	require.ErrorIs(t, err, domain.ErrDefinitionConflict)
}

func TestSaveProvisional_ExistingFileIsKept(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid JSON", "{ not json"},
		{"no tag", `{"base_image": "python:3.8"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			path := f.store.Path("hand_written")
			require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
			require.NoError(t, os.WriteFile(path, []byte(tt.content), domain.FilePerm))

			_, err := f.m.SaveProvisional("hand_written", testDefinition())
			require.ErrorIs(t, err, domain.ErrDefinitionConflict)
			assert.False(t, f.rules.Has("hand_written"))
			assert.Equal(t, domain.TxAbsent, f.m.State("hand_written"))

			f.logger.EXPECT().Warn(gomock.Any())
			f.m.Rollback("hand_written")

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestSaveProvisional_Invalid(t *testing.T) {
	f := newFixture(t)
	def := testDefinition()
	def.Tag = ""

	_, err := f.m.SaveProvisional("no_tag", def)
	require.ErrorContains(t, err, domain.ErrInvalidDefinition.Error())
	assert.NoFileExists(t, f.store.Path("no_tag"))
	assert.False(t, f.rules.Has("no_tag"))
}

func TestSaveProvisional_WriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDefinitionStore(ctrl)
	rules, err := domain.NewRuleSet()
	require.NoError(t, err)

	store.EXPECT().Exists("blocked").Return(false, nil)
	store.EXPECT().Write("blocked", gomock.Any()).
		Return("", zerr.Wrap(errors.New("no space left on device"), domain.ErrPersistenceFailed.Error()))

	m := txn.New(store, rules, mocks.NewMockLogger(ctrl))
	_, err = m.SaveProvisional("blocked", testDefinition())
	require.ErrorContains(t, err, domain.ErrPersistenceFailed.Error())
	assert.False(t, rules.Has("blocked"))
	assert.Equal(t, domain.TxAbsent, m.State("blocked"))
}

func TestSaveProvisional_ExistsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDefinitionStore(ctrl)
	rules, err := domain.NewRuleSet()
	require.NoError(t, err)

	store.EXPECT().Exists("x").Return(false, zerr.Wrap(errors.New("permission denied"), domain.ErrDefinitionReadFailed.Error()))

	m := txn.New(store, rules, mocks.NewMockLogger(ctrl))
	_, err = m.SaveProvisional("x", testDefinition())
	require.ErrorContains(t, err, domain.ErrDefinitionReadFailed.Error())
	assert.False(t, rules.Has("x"))
}

func TestCommitUnknownIsWarning(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Warn(gomock.Any()).Times(2)

	f.m.Commit("never_saved")
	f.m.Rollback("never_saved")
	assert.Equal(t, domain.TxAbsent, f.m.State("never_saved"))
}

func TestCommittedCannotBeRolledBack(t *testing.T) {
	f := newFixture(t)

	path, err := f.m.SaveProvisional("test_env", testDefinition())
	require.NoError(t, err)
	f.m.Commit("test_env")

	f.logger.EXPECT().Warn(gomock.Any())
	f.m.Rollback("test_env")
	assert.FileExists(t, path)
	assert.True(t, f.rules.Has("test_env"))
}

func TestRollback_DeleteFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	store := mocks.NewMockDefinitionStore(ctrl)
	rules, err := domain.NewRuleSet()
	require.NoError(t, err)

	store.EXPECT().Exists("x").Return(false, nil)
	store.EXPECT().Write("x", gomock.Any()).Return("/defs/x.json", nil)
	store.EXPECT().Delete("x").Return(errors.New("permission denied"))
	log.EXPECT().Error(gomock.Any())

	m := txn.New(store, rules, log)
	_, err = m.SaveProvisional("x", testDefinition())
	require.NoError(t, err)

	m.Rollback("x")
	assert.False(t, rules.Has("x"))
	assert.False(t, m.IsPending("x"))
}
