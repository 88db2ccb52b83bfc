package log

import (
	"fmt"
	"os"
	"path"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap logger to the Logger interface using the same
// message-then-pairs calling convention as DefaultLogger.
type ZapLogger struct {
	s *zap.SugaredLogger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{s: l.Sugar()}
}

func (l *ZapLogger) New(ctx ...interface{}) Logger {
	return &ZapLogger{s: l.s.With(ctx...)}
}

func (l *ZapLogger) Sync() error {
	return l.s.Sync()
}

func (l *ZapLogger) Debug(v ...interface{}) {
	if len(v) > 0 {
		msg, ctx := split(v)
		l.s.Debugw(msg, ctx...)
	}
}

func (l *ZapLogger) Debugf(format string, v ...interface{}) {
	l.s.Debugf(format, v...)
}

func (l *ZapLogger) Error(v ...interface{}) {
	if len(v) > 0 {
		msg, ctx := split(v)
		l.s.Errorw(msg, ctx...)
	}
}

func (l *ZapLogger) Errorf(format string, v ...interface{}) {
	l.s.Errorf(format, v...)
}

func (l *ZapLogger) Info(v ...interface{}) {
	if len(v) > 0 {
		msg, ctx := split(v)
		l.s.Infow(msg, ctx...)
	}
}

func (l *ZapLogger) Infof(format string, v ...interface{}) {
	l.s.Infof(format, v...)
}

func (l *ZapLogger) Warning(v ...interface{}) {
	if len(v) > 0 {
		msg, ctx := split(v)
		l.s.Warnw(msg, ctx...)
	}
}

func (l *ZapLogger) Warningf(format string, v ...interface{}) {
	l.s.Warnf(format, v...)
}

// Fatal logs at error level and does not exit, matching DefaultLogger.Crit.
func (l *ZapLogger) Fatal(v ...interface{}) {
	if len(v) > 0 {
		msg, ctx := split(v)
		l.s.Errorw(msg, append(ctx, "fatal", true)...)
	}
}

func (l *ZapLogger) Fatalf(format string, v ...interface{}) {
	l.s.Errorw(fmt.Sprintf(format, v...), "fatal", true)
}

func (l *ZapLogger) Panic(v ...interface{}) {
	panic(fmt.Sprint(v...))
}

func (l *ZapLogger) Panicf(format string, v ...interface{}) {
	panic(fmt.Sprintf(format, v...))
}

// NewErrorFileCore returns a core writing error and above as json lines to
// ErrorFileName inside dir, the zap counterpart of HandlerOptions.ErrorDir.
// The returned func closes the file.
func NewErrorFileCore(dir string, enc zapcore.EncoderConfig) (zapcore.Core, func() error, error) {
	if _, err := CreateDirIfMissing(dir); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path.Join(dir, ErrorFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error opening error log file")
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(f), zapcore.ErrorLevel)
	return core, f.Close, nil
}
