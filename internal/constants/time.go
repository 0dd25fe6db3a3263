package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DisplayTimeFormat is the 12-hour format used for human-facing times.
	DisplayTimeFormat = "3:04 PM"

	// MinutesPerDay is the length of one wall-clock day in minutes.
	MinutesPerDay = 24 * 60
)

// OvernightSuffix marks a span that ends on the following day.
const OvernightSuffix = " (+1 day)"
