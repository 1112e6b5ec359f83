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
	"sync/atomic"

	"go.uber.org/zap"
)

var _global atomic.Value

func init() {
	InitGlobalLogger(&ErrorLogger{l: zap.NewNop(), lvl: zap.NewAtomicLevel(), closer: nopCloser{}})
}

// InitGlobalLogger replaces the global logger.
// Before it's called, global logger discards everything.
func InitGlobalLogger(logger *ErrorLogger) {
	_global.Store(logger)
}

// GetLogger returns _global logger.
func GetLogger() *ErrorLogger {
	return _global.Load().(*ErrorLogger)
}

// Write implements io.Writer
func Write(p []byte) (n int, err error) {
	return GetLogger().Write(p)
}

func Error(msg string, f ...zap.Field) {
	GetLogger().Error(msg, f...)
}

func Info(msg string, f ...zap.Field) {
	GetLogger().Info(msg, f...)
}

func Warn(msg string, f ...zap.Field) {
	GetLogger().Warn(msg, f...)
}

func Debug(msg string, f ...zap.Field) {
	GetLogger().Debug(msg, f...)
}

func Fatal(msg string, f ...zap.Field) {
	GetLogger().Fatal(msg, f...)
}

func ErrorID(reqID, msg string) {
	GetLogger().Error(msg, ReqID(reqID))
}

func InfoID(reqID, msg string) {
	GetLogger().Info(msg, ReqID(reqID))
}

func WarnID(reqID, msg string) {
	GetLogger().Warn(msg, ReqID(reqID))
}

func DebugID(reqID, msg string) {
	GetLogger().Debug(msg, ReqID(reqID))
}

// Sync syncs _global.
func Sync() error {
	return GetLogger().Sync()
}

// Close closes _global.
func Close() error {
	return GetLogger().Close()
}

// SetLevel changes _global's level.
func SetLevel(level string) error {
	return GetLogger().SetLevel(level)
}

// DebugOn enables debug level.
func DebugOn() {
	GetLogger().DebugOn()
}

// DebugOff enables info level.
func DebugOff() {
	GetLogger().DebugOff()
}

// GetLvl returns lvl in string.
func GetLvl() string {
	return GetLogger().GetLvl()
}
