// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"io"
	golog "log"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DefaultLogger writes info entries and above to os.Stdout.
	DefaultLogger = NewZap(InfoLevel, os.Stdout)

	// DebugLogger writes every entry to os.Stdout.
	DebugLogger = NewZap(DebugLevel, os.Stdout)

	// DiscardLogger drops every entry. Fatal and Panic still exit and panic.
	DiscardLogger Logger = discardLogger{}
)

var zapLevels = map[Level]zapcore.Level{
	DebugLevel:   zapcore.DebugLevel,
	InfoLevel:    zapcore.InfoLevel,
	WarningLevel: zapcore.WarnLevel,
	ErrorLevel:   zapcore.ErrorLevel,
	PanicLevel:   zapcore.PanicLevel,
	FatalLevel:   zapcore.FatalLevel,
}

// Zap is the zap backed Logger. Entries are JSON lines.
type Zap struct {
	base    *zap.Logger
	sugar   *zap.SugaredLogger
	level   Level
	outputs []io.Writer
}

var _ Logger = (*Zap)(nil)

// NewZap creates a Zap writing entries at level and above to writers, or to
// os.Stdout when writers is empty. An unknown level logs everything.
func NewZap(level Level, writers ...io.Writer) *Zap {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}
	if _, ok := zapLevels[level]; !ok {
		level = DebugLevel
	}

	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, writer := range writers {
		syncers = append(syncers, zapcore.AddSync(writer))
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.Lock(zap.CombineWriteSyncers(syncers...)),
		zapLevels[level])

	base := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel))

	return &Zap{
		base:    base,
		sugar:   base.Sugar(),
		level:   level,
		outputs: writers,
	}
}

func (z *Zap) Debug(v ...any) {
	z.sugar.Debug(v...)
}

func (z *Zap) Debugf(format string, v ...any) {
	z.sugar.Debugf(format, v...)
}

func (z *Zap) Info(v ...any) {
	z.sugar.Info(v...)
}

func (z *Zap) Infof(format string, v ...any) {
	z.sugar.Infof(format, v...)
}

func (z *Zap) Warn(v ...any) {
	z.sugar.Warn(v...)
}

func (z *Zap) Warnf(format string, v ...any) {
	z.sugar.Warnf(format, v...)
}

func (z *Zap) Error(v ...any) {
	z.sugar.Error(v...)
}

func (z *Zap) Errorf(format string, v ...any) {
	z.sugar.Errorf(format, v...)
}

func (z *Zap) Fatal(v ...any) {
	z.sugar.Fatal(v...)
}

func (z *Zap) Fatalf(format string, v ...any) {
	z.sugar.Fatalf(format, v...)
}

func (z *Zap) Panic(v ...any) {
	z.sugar.Panic(v...)
}

func (z *Zap) Panicf(format string, v ...any) {
	z.sugar.Panicf(format, v...)
}

func (z *Zap) Enabled(level Level) bool {
	zl, ok := zapLevels[level]
	return ok && z.base.Core().Enabled(zl)
}

// With skips pairs whose key is not a string. A trailing value without a key
// is logged under "_".
func (z *Zap) With(keyValues ...any) Logger {
	fields := make([]zap.Field, 0, (len(keyValues)+1)/2)
	for i := 0; i < len(keyValues); i += 2 {
		if i == len(keyValues)-1 {
			fields = append(fields, zap.Any("_", keyValues[i]))
			break
		}
		if key, ok := keyValues[i].(string); ok {
			fields = append(fields, zap.Any(key, keyValues[i+1]))
		}
	}
	if len(fields) == 0 {
		return z
	}

	child := z.base.With(fields...)
	return &Zap{
		base:    child,
		sugar:   child.Sugar(),
		level:   z.level,
		outputs: z.outputs,
	}
}

func (z *Zap) LogLevel() Level {
	return z.level
}

func (z *Zap) LogOutput() []io.Writer {
	return z.outputs
}

func (z *Zap) StdLogger() *golog.Logger {
	return zap.NewStdLog(z.base)
}

// Flush syncs the file outputs. The standard streams cannot be synced on
// every platform and are skipped.
func (z *Zap) Flush() error {
	var err error
	for _, output := range z.outputs {
		file, ok := output.(*os.File)
		if !ok || file == os.Stdout || file == os.Stderr {
			continue
		}
		err = multierr.Append(err, file.Sync())
	}
	return err
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
