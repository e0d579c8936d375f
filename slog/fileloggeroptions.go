package slog

// FileLoggerOptions configures lumberjack-backed file rotation for a Channel
// whose WriterTypes includes WRITERTYPE_FILE.
type FileLoggerOptions struct {
	MaxSize    int  `json:"maxSize,omitempty"`
	MaxBackups int  `json:"maxBackups,omitempty"`
	MaxAge     int  `json:"maxAge,omitempty"`
	Compress   bool `json:"compress,omitempty"`
}

func defaultFileLoggerOptions() *FileLoggerOptions {
	return &FileLoggerOptions{
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}
}
