package clients

// ExternalSource represents the providers a game snapshot can come from
type ExternalSource string

const (
	// ExternalSourceBallDontLie is the balldontlie NBA stats API
	ExternalSourceBallDontLie ExternalSource = "balldontlie"

	// ExternalSourceFallback is the built-in static game list
	ExternalSourceFallback ExternalSource = "fallback"
)

// GetExternalSources returns all known external sources
func GetExternalSources() []ExternalSource {
	return []ExternalSource{
		ExternalSourceBallDontLie,
		ExternalSourceFallback,
	}
}

// ValidateExternalSource checks if the source is valid
func ValidateExternalSource(source ExternalSource) bool {
	for _, known := range GetExternalSources() {
		if known == source {
			return true
		}
	}
	return false
}
