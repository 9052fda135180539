package models

// VisualLandmark is one gallery entry suggested for the current place.
// Gallery contents are ephemeral per session token and are always replaced
// wholesale, never merged.
type VisualLandmark struct {
	ShortCaption string `json:"short_caption"`
	RichCaption  string `json:"rich_caption"`
	ImageURL     string `json:"image_url"`
	SourceURI    string `json:"source_uri,omitempty"`
}
