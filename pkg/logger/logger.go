// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

const (
	Development = "development"
	Staging     = "staging"
	Production  = "production"
)

// Setup configures the standard logrus logger for the given environment.
// Unknown environments are treated as development.
func Setup(env string) {
	SetupWithOutput(env, os.Stderr)
}

func SetupWithOutput(env string, out io.Writer) {
	log.SetOutput(out)

	switch env {
	case Production:
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.JSONFormatter{})
	case Staging:
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	default:
		log.SetLevel(log.DebugLevel)
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
