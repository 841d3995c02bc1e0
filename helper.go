package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// setupLogging sends all log output to stdout (container log streams expect a
// single stream) and applies the configured level.
func setupLogging(level string) {
	log.SetOutput(os.Stdout)
	setLogLevel(level)
}

func setLogLevel(l string) {
	switch l {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "fatal":
		log.SetLevel(log.FatalLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
