package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	log = newLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// Init reconfigures the process logger. Called once from config loading;
// before that the env-derived default applies.
func Init(level, format string) {
	log = newLogger(level, format)
}

func newLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if strings.EqualFold(format, "json") {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}

func Debug(msg string, keysAndValues ...any) {
	emit(log.Debug(), msg, keysAndValues)
}

func Info(msg string, keysAndValues ...any) {
	emit(log.Info(), msg, keysAndValues)
}

func Warn(msg string, keysAndValues ...any) {
	emit(log.Warn(), msg, keysAndValues)
}

func Error(msg string, keysAndValues ...any) {
	emit(log.Error(), msg, keysAndValues)
}

func Fatal(msg string, keysAndValues ...any) {
	emit(log.Fatal(), msg, keysAndValues)
}

// emit accepts alternating key/value pairs. A trailing bare value (a common
// call-site slip) is logged under "detail" instead of being dropped.
func emit(ev *zerolog.Event, msg string, kv []any) {
	for i := 0; i < len(kv); i += 2 {
		if i+1 >= len(kv) {
			ev = ev.Interface("detail", kv[i])
			break
		}
		key, ok := kv[i].(string)
		if !ok {
			ev = ev.Interface("detail", kv[i]).Interface("value", kv[i+1])
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}
