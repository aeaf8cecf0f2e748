package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	slogmulti "github.com/samber/slog-multi"
)

// Init initializes the logger
func Init(debug, noColor bool) {
	log.SetDefault(log.NewWithOptions(io.MultiWriter(os.Stderr),
		log.Options{
			ReportCaller:    true,
			ReportTimestamp: false,
			TimeFormat:      time.RFC3339,
			Prefix:          "TIM",
		}))

	if !debug {
		log.SetLevel(log.WarnLevel)
	} else {
		log.SetLevel(log.DebugLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}

// NewTracer builds the step tracer. Records go to the default console logger when
// console is set and, as JSON lines, to trace when it is not nil. Every record
// carries the run id. It returns nil when there is nowhere to write.
func NewTracer(console bool, trace io.Writer) (*slog.Logger, string) {
	var handlers []slog.Handler

	if console {
		handlers = append(handlers, log.Default())
	}
	if trace != nil {
		handlers = append(handlers, slog.NewJSONHandler(trace, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	if len(handlers) == 0 {
		return nil, ""
	}

	runID := uuid.NewString()
	return slog.New(slogmulti.Fanout(handlers...)).With("run", runID), runID
}
