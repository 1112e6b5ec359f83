/*
 * Copyright (c) 2020. Temple3x (temple3x@gmail.com)
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package xlog

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorLogger is used for recording the common application log,
// xlog provides global logger for more convenient.
//
// In practice, ErrorLogger is just a global logger's container,
// it won't be used directly.
type ErrorLogger struct {
	l      *zap.Logger
	lvl    zap.AtomicLevel
	closer io.Closer
}

// ErrLogFmt: error logger output format.
// It's used for log collector process(e.g. elastic/filebeat).
//
// ps:
// Sometimes, there is no "x-rustfs-request-id".
// (It's not from any request)
type ErrLogFmt struct {
	Level string `json:"level"`
	Time  string `json:"time"`
	Msg   string `json:"msg"`
	ReqID string `json:"x-rustfs-request-id"`
}

// default without caller and stack trace,
func defaultEncoderConf() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(ISO8601TimeFormat),
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// NewErrorLogger returns a logger with its properties.
//
// Legal Levels:
// info: "info", "INFO", ""
// debug: "debug", "DEBUG"
// warn: "warn", "WARN"
// error: "error", "ERROR"
// panic: "panic", "PANIC"
// fatal: "fatal", "FATAL"
func NewErrorLogger(outputPath, level string, rCfg *RotateConfig) (logger *ErrorLogger, err error) {

	lvl := zap.NewAtomicLevel()
	err = lvl.UnmarshalText([]byte(level))
	if err != nil {
		return
	}

	syncer, closer, err := openSyncer(outputPath, rCfg)
	if err != nil {
		return
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(defaultEncoderConf()), syncer, lvl)

	return &ErrorLogger{
		l:      zap.New(core),
		lvl:    lvl,
		closer: closer,
	}, nil
}

// NewStderrLogger returns a logger writing to stderr, it's used by CLI.
func NewStderrLogger(level string) (*ErrorLogger, error) {
	return NewErrorLogger(Stderr, level, nil)
}

// Write implements io.Writer
func (l *ErrorLogger) Write(p []byte) (n int, err error) {
	l.Error(string(p))
	return len(p), nil
}

func (l *ErrorLogger) Error(msg string, f ...zap.Field) {
	l.l.Error(msg, f...)
}

func (l *ErrorLogger) Info(msg string, f ...zap.Field) {
	l.l.Info(msg, f...)
}

func (l *ErrorLogger) Warn(msg string, f ...zap.Field) {
	l.l.Warn(msg, f...)
}

func (l *ErrorLogger) Debug(msg string, f ...zap.Field) {
	l.l.Debug(msg, f...)
}

func (l *ErrorLogger) Fatal(msg string, f ...zap.Field) {
	l.l.Fatal(msg, f...)
}

func (l *ErrorLogger) Panic(msg string, f ...zap.Field) {
	l.l.Panic(msg, f...)
}

// Sync syncs ErrorLogger.
func (l *ErrorLogger) Sync() error {
	return l.l.Sync()
}

// Close syncs and closes the output.
func (l *ErrorLogger) Close() error {
	_ = l.l.Sync()
	return l.closer.Close()
}

// SetLevel changes level online.
func (l *ErrorLogger) SetLevel(level string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return err
	}
	l.lvl.SetLevel(lvl)
	return nil
}

// DebugOn enable debug level.
func (l *ErrorLogger) DebugOn() {
	l.lvl.SetLevel(zap.DebugLevel)
}

// DebugOff enable info level.
func (l *ErrorLogger) DebugOff() {
	l.lvl.SetLevel(zap.InfoLevel)
}

// GetLvl return lvl in string.
func (l *ErrorLogger) GetLvl() string {
	return l.lvl.String()
}
