package ledgerrpc

import (
	"github.com/spacechains/covchain/infrastructure/logger"
)

var log = logger.RegisterSubSystem("RPCL")
