package gpu

import (
	"strconv"
	"strings"
)

// ExtractPNPIDs pulls the PCI vendor and device codes out of a Windows
// PNPDeviceID string of the form `PCI\VEN_10DE&DEV_2484&...`. Missing
// markers yield empty strings.
func ExtractPNPIDs(pnpDeviceID string) (vendorID, deviceID string) {
	vendorID = substringBetween(pnpDeviceID, "VEN_", "&")
	deviceID = substringBetween(pnpDeviceID, "DEV_", "&")
	return vendorID, deviceID
}

func substringBetween(s, marker, terminator string) string {
	idx := strings.Index(s, marker)
	if idx < 0 {
		return ""
	}
	rest := s[idx+len(marker):]
	if end := strings.Index(rest, terminator); end >= 0 {
		return rest[:end]
	}
	return rest
}

// ParseLspci extracts display adapters from `lspci -nn` output. Only lines
// tagged as VGA or 3D controller class are considered.
func ParseLspci(output string) []Device {
	var devices []Device
	for _, line := range strings.Split(output, "\n") {
		if device, ok := parseLspciLine(line); ok {
			devices = append(devices, device)
		}
	}
	return devices
}

func parseLspciLine(line string) (Device, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Device{}, false
	}
	if !strings.Contains(line, "VGA") && !strings.Contains(line, "3D controller") {
		return Device{}, false
	}

	device := Device{Name: "Unknown"}

	// The vendor:device pair is the last bracketed token, e.g. [10de:2484].
	name := line
	if idx := strings.Index(line, "]: "); idx >= 0 {
		name = line[idx+3:]
	}
	if open := strings.LastIndex(name, "["); open >= 0 {
		bracket := name[open+1:]
		if end := strings.Index(bracket, "]"); end >= 0 {
			bracket = bracket[:end]
		}
		if parts := strings.Split(bracket, ":"); len(parts) == 2 {
			device.VendorID = parts[0]
			device.DeviceID = parts[1]
			name = strings.TrimSpace(name[:open])
		}
	}
	if name != "" {
		device.Name = name
	}
	return device, true
}

// ParseSystemProfiler extracts adapters from `system_profiler
// SPDisplaysDataType` output. Each `Chipset Model:` line starts a new
// adapter block; vendor codes appear as a parenthesized hex suffix on the
// `Vendor:` line.
func ParseSystemProfiler(output string) []Device {
	var devices []Device
	var current *Device

	flush := func() {
		if current != nil && current.Name != "" {
			devices = append(devices, *current)
		}
		current = nil
	}

	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "Chipset Model:"):
			flush()
			current = &Device{Name: valueAfterColon(line)}
		case strings.HasPrefix(line, "Vendor:"):
			if current == nil {
				continue
			}
			vendorText := valueAfterColon(line)
			if open := strings.Index(vendorText, "("); open >= 0 {
				code := strings.Trim(vendorText[open:], "() ")
				code = strings.TrimPrefix(strings.ToUpper(code), "0X")
				current.VendorID = code
				vendorText = strings.TrimSpace(vendorText[:open])
			}
			if current.VendorID == "" {
				current.VendorID = vendorIDFromName(vendorText)
			}
		case strings.HasPrefix(line, "Total Number of Cores:"):
			if current == nil {
				continue
			}
			if cores, err := strconv.Atoi(valueAfterColon(line)); err == nil {
				current.Cores = cores
			}
		case strings.HasPrefix(line, "VRAM (Total):"):
			if current == nil {
				continue
			}
			value := strings.TrimSuffix(valueAfterColon(line), " MB")
			if vram, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				current.VRAMMB = vram
			}
		}
	}
	flush()
	return devices
}

func valueAfterColon(line string) string {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}

// vendorIDFromName maps a human-readable vendor label back to its PCI code
// so reports without a parenthesized code still resolve.
func vendorIDFromName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "apple"):
		return "106B"
	case strings.Contains(lower, "nvidia"):
		return "10DE"
	case strings.Contains(lower, "amd"), strings.Contains(lower, "ati"):
		return "1002"
	case strings.Contains(lower, "intel"):
		return "8086"
	default:
		return ""
	}
}
