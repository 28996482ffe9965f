// Package logrus adapts a *logrus.Entry to keycache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/keycache"
)

var _ keycache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

// New wraps l, tagging every entry with component=keycache.
func New(l *logrus.Logger) LogrusLogger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return LogrusLogger{E: l.WithField("component", "keycache")}
}

func (l LogrusLogger) Debug(msg string, f keycache.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f keycache.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f keycache.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f keycache.Fields) { l.with(f).Error(msg) }

// with maps an "err" field onto logrus.ErrorKey.
func (l LogrusLogger) with(f keycache.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	fs := make(logrus.Fields, len(f))
	for k, v := range f {
		if k == "err" {
			k = logrus.ErrorKey
		}
		fs[k] = v
	}
	return l.E.WithFields(fs)
}
