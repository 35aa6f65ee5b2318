package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logLevel picks the level from -q/-v, then RICHTEXT_LOG_LEVEL, then info.
func logLevel(common commonFlags, envLevel string) (zapcore.Level, error) {
	switch {
	case common.verbose:
		return zapcore.DebugLevel, nil
	case common.quiet:
		return zapcore.ErrorLevel, nil
	case envLevel != "":
		lvl, err := zapcore.ParseLevel(envLevel)
		if err != nil {
			return zapcore.InfoLevel, fmt.Errorf("%w: %sLOG_LEVEL: %v", ErrInvalidEnv, envPrefix, err)
		}
		return lvl, nil
	}
	return zapcore.InfoLevel, nil
}

// newLogger builds a console logger without timestamps writing to w.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// setup is the shared prologue of every command: environment, logger and
// typo warnings.
func setup(common commonFlags, env *Environment) (*envConfig, *zap.Logger, error) {
	environ := env.Environ()
	ec, err := loadEnvConfig(environ)
	if err != nil {
		return nil, nil, err
	}
	level, err := logLevel(common, ec.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(env.Stderr, level)
	warnUnknownEnvVars(logger, environ)
	return ec, logger, nil
}
