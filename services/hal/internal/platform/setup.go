package platform

import "mprsense-go/services/hal/internal/platform/setups"

// GetSelectedPlan returns the bus wiring of the build-selected setup, or an
// empty plan for board defaults.
func GetSelectedPlan() setups.ResourcePlan { return getSelectedPlan() }
