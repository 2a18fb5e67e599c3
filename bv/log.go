package bv

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "bv")
