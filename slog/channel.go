package slog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Channel represents a single named logging stream (compile/solve/rule) with
// its own level and set of writers.
type Channel struct {
	Name              ChannelLabel       `json:"name,omitempty"`
	LogLevel          string             `json:"logLevel,omitempty"`
	WriterTypes       WriterTypes        `json:"writerTypes,omitempty"`
	FileLoggerOptions *FileLoggerOptions `json:"fileLoggerOptions,omitempty"`
	LogDir            string             `json:"logDir,omitempty"`

	logger zerolog.Logger
}

type Channels []*Channel

func (ch *Channel) Validate() error {
	if ch == nil {
		return fmt.Errorf("channel is nil")
	}
	if ch.Name.IsEmpty() {
		return fmt.Errorf("channel name is empty")
	}
	if strings.TrimSpace(ch.LogLevel) == "" {
		return fmt.Errorf("channel log level is empty")
	}
	if len(ch.WriterTypes) == 0 {
		return fmt.Errorf("channel writer types is empty")
	}
	return nil
}

// Initialize builds the zerolog.Logger for this channel from its writer types.
func (ch *Channel) Initialize() error {
	if err := ch.Validate(); err != nil {
		return err
	}

	lvl, err := zerolog.ParseLevel(ch.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	for _, wt := range ch.WriterTypes {
		switch wt {
		case WRITERTYPE_CONSOLE_STDOUT:
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
		case WRITERTYPE_CONSOLE_STDERR:
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		case WRITERTYPE_FILE:
			if ch.LogDir == "" {
				return fmt.Errorf("channel %q requests file writer but has no logDir", ch.Name)
			}
			if err := os.MkdirAll(ch.LogDir, 0o755); err != nil {
				return fmt.Errorf("create log dir %q: %w", ch.LogDir, err)
			}
			opts := ch.FileLoggerOptions
			if opts == nil {
				opts = defaultFileLoggerOptions()
			}
			writers = append(writers, &lumberjack.Logger{
				Filename:   filepath.Join(ch.LogDir, ch.Name.String()+".log"),
				MaxSize:    opts.MaxSize,
				MaxBackups: opts.MaxBackups,
				MaxAge:     opts.MaxAge,
				Compress:   opts.Compress,
			})
		}
	}

	if len(writers) == 0 {
		return fmt.Errorf("channel %q has no usable writers", ch.Name)
	}

	ch.logger = zerolog.New(io.MultiWriter(writers...)).Level(lvl).With().
		Timestamp().
		Str("channel", ch.Name.String()).
		Logger()
	return nil
}
