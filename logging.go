package rhfw

import (
	"fmt"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rhfw/rhfw/gpu"
	"github.com/rhfw/rhfw/resource"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(os.Stdout, "", flags),
		err:    log.New(os.Stderr, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) prefixf(level string, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.prefixf("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.prefixf("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.prefixf("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.prefixf("ERROR", format, args...))
}

// ZapLogger adapts a zap logger to Logger. The debug switch is an atomic
// level shared with the zap core when the logger was built by NewZapLogger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// NewZapLogger builds a production zap logger writing to stderr.
func NewZapLogger(prefix string, debug bool) (*ZapLogger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if prefix != "" {
		z = z.Named(prefix)
	}
	return &ZapLogger{sugar: z.Sugar(), level: level}, nil
}

// WrapZapLogger adapts an existing zap logger. SetDebug only affects
// DebugEnabled since the core's level belongs to the caller.
func WrapZapLogger(z *zap.Logger) *ZapLogger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if z.Core().Enabled(zapcore.DebugLevel) {
		level.SetLevel(zapcore.DebugLevel)
	}
	return &ZapLogger{sugar: z.Sugar(), level: level}
}

func (l *ZapLogger) Zap() *zap.Logger { return l.sugar.Desugar() }

func (l *ZapLogger) DebugEnabled() bool { return l.level.Enabled(zapcore.DebugLevel) }

func (l *ZapLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(zapcore.InfoLevel)
	}
}

func (l *ZapLogger) Debugf(format string, args ...any) {
	if l.DebugEnabled() {
		l.sugar.Debugf(format, args...)
	}
}
func (l *ZapLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *ZapLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *ZapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Log output formats accepted by LoggingModule.
const (
	LogFormatText = "text"
	LogFormatZap  = "zap"
)

// LoggingModule installs a logger as a resource. With the zap format the
// same zap logger is handed to the resource and gpu packages.
type LoggingModule struct {
	Prefix string
	Debug  bool
	Format string
}

func (m LoggingModule) Install(app *App) {
	if m.Format == LogFormatZap {
		zl, err := NewZapLogger(m.Prefix, m.Debug)
		if err == nil {
			resource.SetLogger(zl.Zap())
			gpu.SetLogger(zl.Zap())
			app.addResources(zl)
			return
		}
		fmt.Fprintf(os.Stderr, "zap logger unavailable, falling back to text: %v\n", err)
	}
	app.addResources(NewDefaultLogger(m.Prefix, m.Debug))
}

// Nop logger and App helper accessor

type nopLogger struct{}

func NewNopLogger() Logger                                 { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                    { return false }
func (n *nopLogger) SetDebug(enabled bool)                 {}
func (n *nopLogger) Debugf(format string, args ...any)     {}
func (n *nopLogger) Infof(format string, args ...any)      {}
func (n *nopLogger) Warnf(format string, args ...any)      {}
func (n *nopLogger) Errorf(format string, args ...any)     {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	if app.resources != nil {
		for _, r := range app.resources {
			if l, ok := r.(Logger); ok {
				return l
			}
		}
	}
	return NewNopLogger()
}
