package logger

import (
	"io"
	"os"
	"path/filepath"

	stringutils "github.com/l3uddz/streamarr/utils/strings"
	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var (
	logFilePath string
	log         = GetLogger("log")
)

/* Public */

func Init(logLevel int, logFile string) error {
	// determine logging level
	useLevel := logrus.InfoLevel
	switch logLevel {
	case 0:
		break
	case 1:
		useLevel = logrus.DebugLevel
	default:
		useLevel = logrus.TraceLevel
	}

	// console formatter
	logrus.SetFormatter(&prefixed.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		QuoteEmptyFields: true,
		ForceFormatting:  true,
	})
	logrus.SetLevel(useLevel)

	// stdout is reserved for command output
	var output io.Writer = os.Stderr

	// file output
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
			return errors.WithMessagef(err, "failed creating log directory for: %q", logFile)
		}

		output = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    5,
			MaxBackups: 10,
			MaxAge:     14,
			Compress:   false,
		})
		logFilePath = logFile
	}

	logrus.SetOutput(output)
	return nil
}

func ShowUsing() {
	log.Infof("Using %s = %s", stringutils.StringLeftJust("LOG_LEVEL", " ", 10),
		logrus.GetLevel().String())

	if logFilePath != "" {
		log.Infof("Using %s = %q", stringutils.StringLeftJust("LOG", " ", 10), logFilePath)
	}
}

func GetLogger(prefix string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"prefix": prefix})
}
