package domain

// WatchProvider is a streaming service tag from the known provider table
type WatchProvider string

// ProviderStyle is how a provider badge is displayed
type ProviderStyle struct {
	Label string // Human-readable name
	Color string // Badge background as hex
}

// providerStyles is the single provider-to-display mapping. Anything that
// validates or renders providers reads it through LookupProvider.
var providerStyles = map[WatchProvider]ProviderStyle{
	"YouTube":       {Label: "YouTube", Color: "#EF4444"},
	"Netflix":       {Label: "Netflix", Color: "#E50914"},
	"Prime":         {Label: "Prime Video", Color: "#2563EB"},
	"DisneyPlus":    {Label: "Disney+", Color: "#113CCF"},
	"Hulu":          {Label: "Hulu", Color: "#1CE783"},
	"HBO":           {Label: "HBO", Color: "#91521A"},
	"HBOMax":        {Label: "HBO Max", Color: "#5B22A5"},
	"AppleTV":       {Label: "Apple TV", Color: "#000000"},
	"Peacock":       {Label: "Peacock", Color: "#010101"},
	"ParamountPlus": {Label: "Paramount+", Color: "#004B87"},
	"Crunchyroll":   {Label: "Crunchyroll", Color: "#F67500"},
	"Spotify":       {Label: "Spotify", Color: "#1DB954"},
	"SoundCloud":    {Label: "SoundCloud", Color: "#FF8800"},
	"Tubi":          {Label: "Tubi", Color: "#00AEEF"},
	"Sling":         {Label: "Sling", Color: "#EE2B24"},
	"Starz":         {Label: "Starz", Color: "#FFDB00"},
	"Paramount":     {Label: "Paramount", Color: "#004B87"},
	"Vudu":          {Label: "Vudu", Color: "#2C5AA0"},
	"Disney":        {Label: "Disney", Color: "#0070E0"},
	"AppleMusic":    {Label: "Apple Music", Color: "#FA233B"},
	"PeacockTV":     {Label: "Peacock TV", Color: "#00B0E3"},
}

// LookupProvider returns the display style for a provider tag
func LookupProvider(p WatchProvider) (ProviderStyle, bool) {
	style, ok := providerStyles[p]
	return style, ok
}

// IsKnownProvider returns true if the tag is in the provider table
func IsKnownProvider(p WatchProvider) bool {
	_, ok := providerStyles[p]
	return ok
}

// FilterKnownProviders keeps only tags present in the provider table,
// preserving order. Unknown tags are dropped silently.
// The result is never nil.
func FilterKnownProviders(tags []string) []WatchProvider {
	out := make([]WatchProvider, 0, len(tags))
	for _, t := range tags {
		p := WatchProvider(t)
		if IsKnownProvider(p) {
			out = append(out, p)
		}
	}
	return out
}
