package config

const (
	defaultOutputFormat         = "txt"
	defaultYtdlpBinary          = "yt-dlp"
	defaultAudioFormat          = "mp3"
	defaultAudioQuality         = "192K"
	defaultFetchTimeout         = 3600
	defaultInterpreter          = "python3"
	defaultWhisperModel         = "base"
	defaultDevice               = "auto"
	defaultComputeType          = "auto"
	defaultBeamSize             = 5
	defaultTranscribeTimeout    = 7200
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir(),
		},
		Output: Output{
			Format: defaultOutputFormat,
		},
		Ytdlp: Ytdlp{
			Binary:       defaultYtdlpBinary,
			AudioFormat:  defaultAudioFormat,
			AudioQuality: defaultAudioQuality,
			Timeout:      defaultFetchTimeout,
		},
		Whisper: Whisper{
			Model:       defaultWhisperModel,
			Interpreter: defaultInterpreter,
			Device:      defaultDevice,
			ComputeType: defaultComputeType,
			BeamSize:    defaultBeamSize,
			Timeout:     defaultTranscribeTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
