package logger

import (
	"os"
	"sync"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/gruntwork-io/go-commons/logging"
	"github.com/sirupsen/logrus"
)

const projectName = "glow"

var (
	projectLogger *logrus.Logger
	lock          sync.Mutex
)

// GetProjectLogger returns an entry on the shared logger. Lines are prefixed with [glow].
func GetProjectLogger() *logrus.Entry {
	lock.Lock()
	defer lock.Unlock()

	if projectLogger == nil {
		projectLogger = logging.GetLogger(projectName)
		projectLogger.SetOutput(os.Stderr)
	}
	return logrus.NewEntry(projectLogger)
}

// SetLevel changes the level of the shared logger and of any logger created
// after it. An empty level leaves it untouched.
func SetLevel(level string) error {
	if level == "" {
		return nil
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	logging.SetGlobalLogLevel(lvl)

	lock.Lock()
	defer lock.Unlock()
	if projectLogger != nil {
		projectLogger.SetLevel(lvl)
	}
	return nil
}
