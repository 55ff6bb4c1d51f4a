package route

import (
	"fmt"

	"github.com/xy-planning-network/waypoint"
)

// ErrBadPattern is the configuration error for a pattern
// whose capture groups cannot be paired with parameter names.
var ErrBadPattern = fmt.Errorf("%w: bad pattern", waypoint.ErrBadConfig)
