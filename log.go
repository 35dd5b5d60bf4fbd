package stepless

import (
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// NewLogger returns a logfmt logger tagged with name, the same shape as the
// teacher repo's Spacecraft.SCLogInit.
func NewLogger(name string) kitlog.Logger {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	return kitlog.With(logger, "sim", name)
}

// nopLogger discards everything, used whenever a Universe/Timeline is built
// without an explicit logger.
var nopLogger = kitlog.NewNopLogger()
