package constants

const (
	// Default Settings Values
	DefaultWakeTime                 = "04:30"
	DefaultSleepTime                = "21:00"
	DefaultNightOwlEnabledByDefault = false

	// FallbackTime replaces an entry start/end that could not be parsed.
	FallbackTime = "00:00"

	// Recommended sleep window, inclusive on both ends, wrapping midnight.
	SleepWindowStart = "20:00"
	SleepWindowEnd   = "02:00"
)
