package domain

import "go.trai.ch/zerr"

var (
	// ErrSourceReadFailed is returned when a source file cannot be read for analysis.
	ErrSourceReadFailed = zerr.New("failed to read source file")

	// ErrRuleAlreadyExists is returned when adding a rule whose id is already active.
	ErrRuleAlreadyExists = zerr.New("image rule already exists")

	// ErrRuleNotFound is returned when a requested image rule is not in the active set.
	ErrRuleNotFound = zerr.New("image rule not found")

	// ErrInvalidRule is returned when an image rule fails validation.
	ErrInvalidRule = zerr.New("invalid image rule")

	// ErrDefinitionConflict is returned when a provisional save targets an id that is already active.
	ErrDefinitionConflict = zerr.New("environment definition already exists")

	// ErrInvalidDefinition is returned when an environment definition fails validation.
	ErrInvalidDefinition = zerr.New("invalid environment definition")

	// ErrPersistenceFailed is returned when an environment definition cannot be written.
	ErrPersistenceFailed = zerr.New("failed to persist environment definition")

	// ErrDefinitionReadFailed is returned when an environment definition cannot be read.
	ErrDefinitionReadFailed = zerr.New("failed to read environment definition")

	// ErrDefinitionDeleteFailed is returned when an environment definition cannot be removed.
	ErrDefinitionDeleteFailed = zerr.New("failed to delete environment definition")

	// ErrDefinitionNotFound is returned when a definition id has no file in the store.
	ErrDefinitionNotFound = zerr.New("environment definition not found")

	// ErrMappingTableInvalid is returned when the embedded mapping table cannot be decoded.
	ErrMappingTableInvalid = zerr.New("invalid package mapping table")

	// ErrKnowledgeWriteFailed is returned when user knowledge cannot be saved.
	ErrKnowledgeWriteFailed = zerr.New("failed to write user knowledge")

	// ErrIndexCacheCreateFailed is returned when the package index cache directory cannot be created.
	ErrIndexCacheCreateFailed = zerr.New("failed to create package index cache directory")

	// ErrIndexCacheReadFailed is returned when reading from the package index cache fails.
	ErrIndexCacheReadFailed = zerr.New("failed to read from package index cache")

	// ErrIndexCacheWriteFailed is returned when writing to the package index cache fails.
	ErrIndexCacheWriteFailed = zerr.New("failed to write to package index cache")

	// ErrIndexRequestFailed is returned when a package index request fails.
	ErrIndexRequestFailed = zerr.New("failed to query package index")

	// ErrIndexParseFailed is returned when a package index response cannot be parsed.
	ErrIndexParseFailed = zerr.New("failed to parse package index response")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file fails validation.
	ErrConfigInvalid = zerr.New("invalid config file")

	// ErrDockerUnavailable is returned when the docker daemon cannot be reached.
	ErrDockerUnavailable = zerr.New("docker is not running or not installed")

	// ErrBuildFailed is returned when an image build fails.
	ErrBuildFailed = zerr.New("image build failed")

	// ErrRunFailed is returned when a container run fails.
	ErrRunFailed = zerr.New("container run failed")

	// ErrScriptNotFound is returned when the script to run does not exist.
	ErrScriptNotFound = zerr.New("script not found")

	// ErrOutputCollision is returned when the output directory equals the script directory.
	ErrOutputCollision = zerr.New("output directory cannot be identical to the script source directory")

	// ErrOutputCreateFailed is returned when the run output directory cannot be created.
	ErrOutputCreateFailed = zerr.New("failed to create output directory")

	// ErrDockerfileWriteFailed is returned when a rendered Dockerfile cannot be written.
	ErrDockerfileWriteFailed = zerr.New("failed to write Dockerfile")

	// ErrRenderFailed is returned when a definition cannot be rendered.
	ErrRenderFailed = zerr.New("failed to render Dockerfile")

	// ErrHistoryReadFailed is returned when the run history cannot be read.
	ErrHistoryReadFailed = zerr.New("failed to read run history")

	// ErrHistoryWriteFailed is returned when the run history cannot be written.
	ErrHistoryWriteFailed = zerr.New("failed to write run history")
)
