package log

import (
	"fmt"
	"sync"

	"github.com/inconshreveable/log15"
)

var (
	defaultLogger Logger
	mut           sync.Mutex
)

type Logger interface {
	// New returns a new Logger that has this logger's context plus the given context
	New(ctx ...interface{}) Logger

	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})

	Panic(v ...interface{})
	Panicf(format string, v ...interface{})
}

func SetLogger(l Logger) {
	mut.Lock()
	defer mut.Unlock()
	defaultLogger = l
}

func GetLogger(ctx ...interface{}) Logger {
	mut.Lock()
	if defaultLogger == nil {
		defaultLogger = &DefaultLogger{New("logger", "docsign")}
	}
	l := defaultLogger
	mut.Unlock()

	if len(ctx) == 0 {
		return l
	}
	return l.New(ctx...)
}

// DefaultLogger is a default implementation of the Logger interface.
// The first argument of the leveled methods is the message, the rest are
// alternating key/value pairs.
type DefaultLogger struct {
	log15.Logger
}

func (l *DefaultLogger) New(ctx ...interface{}) Logger {
	return &DefaultLogger{l.Logger.New(ctx...)}
}

func split(v []interface{}) (string, []interface{}) {
	return fmt.Sprint(v[0]), v[1:]
}

func (l *DefaultLogger) Debug(v ...interface{}) {
	if len(v) > 0 {
		msg, ctx := split(v)
		l.Logger.Debug(msg, ctx...)
	}
}

func (l *DefaultLogger) Debugf(format string, v ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Error(v ...interface{}) {
	if len(v) > 0 {
		msg, ctx := split(v)
		l.Logger.Error(msg, ctx...)
	}
}

func (l *DefaultLogger) Errorf(format string, v ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Info(v ...interface{}) {
	if len(v) > 0 {
		msg, ctx := split(v)
		l.Logger.Info(msg, ctx...)
	}
}

func (l *DefaultLogger) Infof(format string, v ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Warning(v ...interface{}) {
	if len(v) > 0 {
		msg, ctx := split(v)
		l.Logger.Warn(msg, ctx...)
	}
}

func (l *DefaultLogger) Warningf(format string, v ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Fatal(v ...interface{}) {
	if len(v) > 0 {
		msg, ctx := split(v)
		l.Logger.Crit(msg, ctx...)
	}
}

func (l *DefaultLogger) Fatalf(format string, v ...interface{}) {
	l.Logger.Crit(fmt.Sprintf(format, v...))
}

func (l *DefaultLogger) Panic(v ...interface{}) {
	panic(fmt.Sprint(v...))
}

func (l *DefaultLogger) Panicf(format string, v ...interface{}) {
	panic(fmt.Sprintf(format, v...))
}
