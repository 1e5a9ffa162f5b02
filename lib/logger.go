package lib

import (
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

func Logger(logFilePath string) *lecho.Logger {
	logger := lecho.New(
		os.Stdout, // default to STDOUT
		lecho.WithLevel(log.INFO),
		lecho.WithTimestamp(),
	)

	// check if a log file config is set
	if logFilePath != "" {
		extension := filepath.Ext(logFilePath)
		path := logFilePath
		if extension == "" {
			path = logFilePath + time.Now().Format("-2006-01-02") + ".log"
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err != nil {
			logger.Errorf("failed to open logging file: %v", err)
			return logger
		}
		logger.SetOutput(file)
	}

	return logger
}
