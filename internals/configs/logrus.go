package configs

import (
	"github.com/sirupsen/logrus"
)

var logrusInstance *logrus.Logger

// GetLogrusInstance mengembalikan logger JSON tunggal untuk
// fan-out notifikasi dan channel realtime.
func GetLogrusInstance() *logrus.Logger {
	if logrusInstance == nil {
		logrusInstance = logrus.New()
		logrusInstance.SetFormatter(&logrus.JSONFormatter{})
	}
	return logrusInstance
}
