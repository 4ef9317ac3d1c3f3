package domain

// Mount is a bind mount from the host into the container.
type Mount struct {
	Host string `json:"host"`
	Bind string `json:"bind"`
	Mode string `json:"mode"`
}

// RunConfig describes how to run a script inside a selected image.
type RunConfig struct {
	Image       string   `json:"image"`
	RuntimeName string   `json:"runtime_name"`
	Volumes     []Mount  `json:"volumes"`
	WorkingDir  string   `json:"working_dir"`
	Command     []string `json:"command"`
	ScriptName  string   `json:"script_name"`
	HostWorkDir string   `json:"host_work_dir"`
}

// RunArgs returns the docker run argument vector for cfg, without the binary name:
// run --rm -v host:bind:mode ... -w <dir> <image> <command...>.
func RunArgs(cfg RunConfig) []string {
	args := []string{"run", "--rm"}
	for _, m := range cfg.Volumes {
		mode := m.Mode
		if mode == "" {
			mode = "rw"
		}
		args = append(args, "-v", m.Host+":"+m.Bind+":"+mode)
	}
	args = append(args, "-w", cfg.WorkingDir, cfg.Image)
	return append(args, cfg.Command...)
}

// BuildArgs returns the docker build argument vector, without the binary name.
func BuildArgs(tag, dockerfile, contextDir string) []string {
	return []string{"build", "-t", tag, "-f", dockerfile, contextDir}
}

// HistoryRecord is one entry of the run history.
type HistoryRecord struct {
	ID          string `json:"id"`
	Timestamp   string `json:"timestamp"`
	ScriptPath  string `json:"script_path"`
	RuntimeName string `json:"runtime_name"`
	ImageTag    string `json:"image_tag"`
	OutputDir   string `json:"output_dir"`
	Status      string `json:"status"`
}

const (
	// RunStatusSuccess marks a run whose container exited cleanly.
	RunStatusSuccess = "success"
	// RunStatusFailed marks a run whose container failed.
	RunStatusFailed = "failed"
)

// TxState is the lifecycle state of a definition transaction.
type TxState string

const (
	// TxAbsent means the id was never saved through the transaction manager.
	TxAbsent TxState = "absent"
	// TxPending means the definition is saved and awaits a build outcome.
	TxPending TxState = "pending"
	// TxCommitted means the build succeeded and the definition is permanent.
	TxCommitted TxState = "committed"
	// TxRolledBack means the definition was removed after a failed build.
	TxRolledBack TxState = "rolled-back"
)

// RunOptions are the user choices for planning a run.
type RunOptions struct {
	// DataDir is mounted read-only at ContainerDataDir when it exists.
	DataDir string

	// OutputDir receives a timestamped LCR_RUN_ directory. When empty the
	// configured results directory is used.
	OutputDir string
}
