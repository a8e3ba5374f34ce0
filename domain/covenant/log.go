package covenant

import (
	"github.com/spacechains/covchain/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CVNT")
