//go:build pico && pico_mpr

package platform

import "mprsense-go/services/hal/internal/platform/setups"

func getSelectedPlan() setups.ResourcePlan { return setups.SelectedPlan }
