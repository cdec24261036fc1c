package config

import "contactsheet/internal/stage"

const (
	defaultConfigPath           = "~/.config/contactsheet/config.toml"
	defaultInput                = "./input/vid.mp4"
	defaultOutputDir            = "./output"
	defaultStateDir             = "~/.local/share/contactsheet"
	defaultLogDir               = "~/.local/share/contactsheet/logs"
	defaultIntervalSeconds      = 10
	defaultPacketSize           = 10
	defaultMaxThumbnails        = 10000
	defaultPacketDelayMS        = 1000
	defaultFFmpegBinary         = "ffmpeg"
	defaultFFprobeBinary        = "ffprobe"
	defaultProbeTimeoutSeconds  = 60
	defaultPacketTimeoutSeconds = 600
	defaultPageFormat           = "A4"
	defaultOrientation          = "portrait"
	defaultMarginCM             = 1.0
	defaultSettleDelayMS        = 2000
	defaultRenderTimeoutSeconds = 120
	defaultDocumentName         = "sequence.pdf"
	defaultNotifyTimeout        = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DefaultInput:     defaultInput,
			DefaultOutputDir: defaultOutputDir,
			StateDir:         defaultStateDir,
			LogDir:           defaultLogDir,
		},
		Sampling: Sampling{
			IntervalSeconds:  defaultIntervalSeconds,
			PacketSize:       defaultPacketSize,
			PacketDelayMS:    defaultPacketDelayMS,
			MaxThumbnails:    defaultMaxThumbnails,
			FilenameTemplate: stage.DefaultFilenameTemplate,
		},
		FFmpeg: FFmpeg{
			FFmpegBinary:         defaultFFmpegBinary,
			FFprobeBinary:        defaultFFprobeBinary,
			ProbeTimeoutSeconds:  defaultProbeTimeoutSeconds,
			PacketTimeoutSeconds: defaultPacketTimeoutSeconds,
		},
		Render: Render{
			Format:         defaultPageFormat,
			Orientation:    defaultOrientation,
			MarginCM:       defaultMarginCM,
			SettleDelayMS:  defaultSettleDelayMS,
			TimeoutSeconds: defaultRenderTimeoutSeconds,
			OutputName:     defaultDocumentName,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Completed:      true,
			Errors:         true,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
