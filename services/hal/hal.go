// services/hal/hal.go
package hal

import (
	"context"

	"mprsense-go/bus"
	_ "mprsense-go/services/hal/internal/devices/mpr"
	"mprsense-go/services/hal/internal/platform"
	"mprsense-go/services/hal/internal/service"
)

// Run starts the HAL on the platform's default I²C buses and GPIO pins and
// blocks until ctx is cancelled. Devices are configured by publishing a
// types.HALConfig (or its JSON form) on config/hal.
func Run(ctx context.Context, conn *bus.Connection) {
	service.New(conn, platform.DefaultI2CFactory(), platform.DefaultPinFactory()).Run(ctx)
}
