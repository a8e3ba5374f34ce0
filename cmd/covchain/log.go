package main

import (
	"github.com/spacechains/covchain/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CVCH")
