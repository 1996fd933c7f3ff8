package magcube

import (
	"sync"

	"go.uber.org/zap"
)

// Log is the package logger. It discards everything until SetLogger is called.
var Log = zap.NewNop().Sugar()

// SetLogger routes package logging through l.
func SetLogger(l *zap.Logger) {
	Log = l.Sugar()
}

func DebugLog(format string, args ...interface{}) {
	if !Debug {
		return
	}
	Log.Debugf(format, args...)
}

var once sync.Once

func DebugLogOnce(format string, args ...interface{}) {
	if !Debug {
		return
	}
	once.Do(func() {
		Log.Debugf(format, args...)
	})
}
