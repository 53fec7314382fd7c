package config

const (
	defaultAppDir               = "~/.local/share/nfcrename"
	defaultLockName             = "nfcrename.lock"
	defaultCoalesceWindowMillis = 250
	defaultQueueBackend         = QueueBackendFile
	defaultAppendAttempts       = 20
	defaultRetryDelayMillis     = 10
	defaultOnContention         = ContentionDrop
	defaultTraversal            = TraversalPostOrder
	defaultMaxCollisionAttempts = 9999
	defaultWatchDebounceMillis  = 500
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogFileName          = "log.txt"

	appDirEnv = "NFCRENAME_APP_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AppDir: defaultAppDir,
		},
		Gate: Gate{
			LockName:             defaultLockName,
			CoalesceWindowMillis: defaultCoalesceWindowMillis,
		},
		Queue: Queue{
			Backend:          defaultQueueBackend,
			AppendAttempts:   defaultAppendAttempts,
			RetryDelayMillis: defaultRetryDelayMillis,
			OnContention:     defaultOnContention,
		},
		Rename: Rename{
			Traversal:            defaultTraversal,
			MaxCollisionAttempts: defaultMaxCollisionAttempts,
		},
		Watch: Watch{
			DebounceMillis: defaultWatchDebounceMillis,
		},
		Logging: Logging{
			Format:   defaultLogFormat,
			Level:    defaultLogLevel,
			FileName: defaultLogFileName,
		},
	}
}
