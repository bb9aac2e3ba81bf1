package assert

import (
	"fmt"

	"github.com/nw-engine/vision/logging"
)

// T panics with the formatted message if check is false.
// Use it for programmer errors only, never for bad input.
func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	logging.ErrLog.Panicln("Assert failed: " + fmt.Sprintf(msg, args...))
}
