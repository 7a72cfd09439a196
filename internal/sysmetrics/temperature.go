// CPU temperature collector — gathers thermal sensor readings.
// Uses gopsutil host sensors with a sysfs thermal-zone fallback on Linux.
// Collects the maximum (hottest) reading across all matching sensors to
// represent the worst-case thermal state.
package sysmetrics

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"
)

// Sensor name substrings used to identify CPU temperature sensors across platforms.
var cpuSensorKeys = []string{
	"cpu", "core", "package",
	"tctl", "tdie", "k10temp", "coretemp",
	"acpitz", "zenpower",
}

// thermalZonePath is the Linux sysfs fallback read in millidegrees Celsius.
const thermalZonePath = "/sys/class/thermal/thermal_zone0/temp"

// minValidTemp is the minimum temperature (°C) considered valid.
const minValidTemp = 0.0

// maxValidTemp is the maximum temperature (°C) considered valid.
// Readings above this are likely sensor errors.
const maxValidTemp = 150.0

// TemperatureCollector collects the CPU temperature. A nil result value
// means no sensor is available on this host.
type TemperatureCollector struct {
	logger *zap.Logger
}

// NewTemperatureCollector creates a new temperature collector.
func NewTemperatureCollector(logger *zap.Logger) *TemperatureCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemperatureCollector{logger: logger}
}

// Name returns the collector identifier.
func (c *TemperatureCollector) Name() string { return "temperature" }

// Collect gathers the CPU temperature from available sensors, taking the
// maximum across all matching readings. When gopsutil reports no usable
// sensor, the Linux thermal-zone file is tried before giving up with nil.
func (c *TemperatureCollector) Collect(ctx context.Context) (interface{}, error) {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil {
		c.logger.Debug("Temperature sensors not available via gopsutil",
			zap.Error(err))
	}

	var max float64
	found := false
	for _, t := range temps {
		if !isValidTemperature(t.Temperature) {
			continue
		}
		if !matchesSensor(strings.ToLower(t.SensorKey), cpuSensorKeys) {
			continue
		}
		if !found || t.Temperature > max {
			max = t.Temperature
			found = true
		}
	}

	if found {
		return &max, nil
	}
	return c.thermalZoneFallback(), nil
}

// IsAvailable returns true — always registered; returns nil when sensors are unavailable.
func (c *TemperatureCollector) IsAvailable() bool { return true }

// thermalZoneFallback reads the first sysfs thermal zone. Returns nil when
// the file is absent (non-Linux hosts) or unparsable.
func (c *TemperatureCollector) thermalZoneFallback() *float64 {
	data, err := os.ReadFile(thermalZonePath)
	if err != nil {
		c.logger.Debug("No thermal zone fallback available", zap.Error(err))
		return nil
	}
	milli, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		c.logger.Debug("Unparsable thermal zone reading", zap.Error(err))
		return nil
	}
	temp := float64(milli) / 1000
	if !isValidTemperature(temp) {
		return nil
	}
	return &temp
}

// matchesSensor checks if the sensor name contains any of the given key substrings.
func matchesSensor(name string, keys []string) bool {
	for _, key := range keys {
		if strings.Contains(name, key) {
			return true
		}
	}
	return false
}

// isValidTemperature returns true if the temperature is within a plausible range.
func isValidTemperature(temp float64) bool {
	return temp > minValidTemp && temp <= maxValidTemp
}
