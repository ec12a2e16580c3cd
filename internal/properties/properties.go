package properties

import "os"

// OutputPath is the default directory for derived rasters when the caller
// does not pass one explicitly.
func OutputPath() string {
	if path := os.Getenv("OUTPUT_PATH"); path != "" {
		return path
	}
	return "./outputs"
}

type Color struct {
	R, G, B uint8
}

var ColorMap = map[string]Color{
	"loss":   {214, 40, 40},
	"marker": {255, 0, 0},
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}
func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
