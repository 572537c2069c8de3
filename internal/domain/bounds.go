package domain

import "fmt"

// Input bounds enforced by the comfort service for every surface. The aggregator
// itself accepts any value.
const (
	MinTemperature = -15.0
	MaxTemperature = 50.0
	MinHumidity    = 0.0
	MaxHumidity    = 100.0

	DefaultTemperature = 25.0
	DefaultHumidity    = 50.0
)

// ValidateEnvironment checks temperature (°C) and relative humidity (%)
// against the accepted input bounds.
func ValidateEnvironment(temperature, humidity float64) error {
	if !(temperature >= MinTemperature && temperature <= MaxTemperature) {
		return fmt.Errorf("%w: temperature %g °C not in [%g, %g]", ErrOutOfRange, temperature, MinTemperature, MaxTemperature)
	}
	if !(humidity >= MinHumidity && humidity <= MaxHumidity) {
		return fmt.Errorf("%w: humidity %g %% not in [%g, %g]", ErrOutOfRange, humidity, MinHumidity, MaxHumidity)
	}
	return nil
}
