package domain

import "path/filepath"

const (
	// LcrDirName is the name of the internal workspace directory.
	LcrDirName = ".lcr"

	// DefinitionsDirName is the name of the environment definitions directory.
	DefinitionsDirName = "definitions"

	// ImagesDirName is the name of the generated Dockerfile directory.
	ImagesDirName = "images"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// PyPIDirName is the name of the package index cache directory.
	PyPIDirName = "pypi"

	// ResultsDirName is the name of the default run output directory.
	ResultsDirName = "results"

	// HistoryFileName is the name of the run history file.
	HistoryFileName = "history.json"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "lcr.yaml"

	// OverlayFileName is the name of the enterprise mapping overlay.
	OverlayFileName = "enterprise.json"

	// UserKnowledgeFileName is the name of the user knowledge layer.
	UserKnowledgeFileName = "user_knowledge.json"

	// SnapshotFileName is the name of the script copy placed in every run output directory.
	SnapshotFileName = "source_snapshot.py"

	// RunDirPrefix prefixes timestamped run output directories under a user-selected output path.
	RunDirPrefix = "LCR_RUN_"

	// RunTimestampLayout formats run timestamps as YYYYMMDD_HHMMSS.
	RunTimestampLayout = "20060102_150405"

	// ContainerInputDir is where the script directory is mounted read-only.
	ContainerInputDir = "/app/input"

	// ContainerOutputDir is where the run output directory is mounted read-write.
	ContainerOutputDir = "/app/output"

	// ContainerDataDir is where an optional data directory is mounted read-only.
	ContainerDataDir = "/data"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultDefinitionsPath returns the default path for environment definitions.
// It joins .lcr and definitions.
func DefaultDefinitionsPath() string {
	return filepath.Join(LcrDirName, DefinitionsDirName)
}

// DefaultImagesPath returns the default path for generated Dockerfiles.
// It joins .lcr and images.
func DefaultImagesPath() string {
	return filepath.Join(LcrDirName, ImagesDirName)
}

// DefaultIndexCachePath returns the default path for the package index cache.
// It joins .lcr, cache, and pypi.
func DefaultIndexCachePath() string {
	return filepath.Join(LcrDirName, CacheDirName, PyPIDirName)
}

// DefaultResultsPath returns the default root for run outputs.
// It joins .lcr and results.
func DefaultResultsPath() string {
	return filepath.Join(LcrDirName, ResultsDirName)
}

// DefaultHistoryPath returns the default path for the run history.
// It joins .lcr and history.json.
func DefaultHistoryPath() string {
	return filepath.Join(LcrDirName, HistoryFileName)
}

// DefaultUserKnowledgePath returns the default path for the user knowledge layer.
func DefaultUserKnowledgePath() string {
	return UserKnowledgeFileName
}
