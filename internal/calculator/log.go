package calculator

import "github.com/sirupsen/logrus"

var log = logrus.WithField("component", "calculator")
