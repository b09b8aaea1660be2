package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// setupLogging writes to stderr. Only warnings get through unless debug is
// set; trace also logs the map after every tick.
func setupLogging(debug, trace bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000000",
	})

	switch {
	case trace:
		log.SetLevel(logrus.TraceLevel)
	case debug:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
}
