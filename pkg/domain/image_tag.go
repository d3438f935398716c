package domain

// ImageTagInfo holds the attributes of the img tag found in a POML document.
type ImageTagInfo struct {
	Src        string
	Alt        string
	Processing string
	FocusAreas string
}
