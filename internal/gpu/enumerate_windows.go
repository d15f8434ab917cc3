//go:build windows

package gpu

import (
	"context"
	"fmt"

	"github.com/yusufpapurcu/wmi"

	"clipforge/internal/config"
)

// win32VideoController mirrors the WMI video controller class fields the
// enumerator reads.
type win32VideoController struct {
	Name        string
	PNPDeviceID string
}

// wmiEnumerator lists adapters from the Windows device inventory.
type wmiEnumerator struct{}

func newPlatformEnumerator(*config.Config) enumerator {
	return &wmiEnumerator{}
}

func (e *wmiEnumerator) enumerate(ctx context.Context) ([]Device, error) {
	var controllers []win32VideoController
	query := "SELECT Name, PNPDeviceID FROM Win32_VideoController"
	if err := wmi.Query(query, &controllers); err != nil {
		return nil, fmt.Errorf("wmi query: %w", err)
	}

	devices := make([]Device, 0, len(controllers))
	for _, controller := range controllers {
		vendorID, deviceID := ExtractPNPIDs(controller.PNPDeviceID)
		devices = append(devices, Device{
			Name:     controller.Name,
			VendorID: vendorID,
			DeviceID: deviceID,
		})
	}
	return devices, nil
}
