package types

// RoomAnalysis is the best-effort characterization of an uploaded room
// photo. It is derived per request and never persisted. All fields are
// coarse buckets produced by heuristic rules, not a trained model.
type RoomAnalysis struct {
	Brightness         string       `json:"brightness"`
	ColorPalette       ColorPalette `json:"color_palette"`
	Contrast           string       `json:"contrast"`
	TextureComplexity  string       `json:"texture_complexity"`
	ArchitecturalStyle string       `json:"architectural_style"`
	RoomType           string       `json:"room_type"`

	// Advisory hints derived from the buckets above. They feed scoring as a
	// bonus signal only; reasoning strings exist for transparency.
	PreferredStyles    []string `json:"preferred_styles,omitempty"`
	PreferredSubjects  []string `json:"preferred_subjects,omitempty"`
	SizeRecommendation string   `json:"size_recommendation,omitempty"`
	ColorGuidance      string   `json:"color_guidance,omitempty"`
	Reasoning          []string `json:"reasoning,omitempty"`
}

type ColorPalette struct {
	Saturation  string `json:"saturation"`
	Temperature string `json:"temperature"`
}

const (
	BrightnessDark   = "dark"
	BrightnessMedium = "medium"
	BrightnessBright = "bright"

	SaturationMuted    = "muted"
	SaturationModerate = "moderate"
	SaturationVibrant  = "vibrant"

	TemperatureWarm = "warm"
	TemperatureCool = "cool"

	ContrastLow    = "low"
	ContrastMedium = "medium"
	ContrastHigh   = "high"

	TextureSimple   = "simple"
	TextureModerate = "moderate"
	TextureComplex  = "complex"

	StyleModern       = "modern"
	StyleTraditional  = "traditional"
	StyleRustic       = "rustic"
	StyleContemporary = "contemporary"

	RoomBedroom    = "bedroom"
	RoomLivingRoom = "living_room"
	RoomGeneral    = "general"
)
