package models

type LockScreenSettings struct {
	Mode            string  `json:"mode"`
	CustomTime      string  `json:"customTime,omitempty"`
	CustomDate      string  `json:"customDate,omitempty"`
	ShowTime        bool    `json:"showTime"`
	ShowDate        bool    `json:"showDate"`
	ShowCamera      bool    `json:"showCamera"`
	ShowFlashlight  bool    `json:"showFlashlight"`
	BackgroundImage string  `json:"backgroundImage,omitempty"`
	BackgroundDim   float64 `json:"backgroundDim"`
}

type VfxSettings struct {
	Mode        string `json:"mode"`
	GreenColor  string `json:"greenColor"`
	BlueColor   string `json:"blueColor"`
	CustomColor string `json:"customColor,omitempty"`

	MarkersEnabled bool   `json:"markersEnabled"`
	MarkerColor    string `json:"markerColor"`
	MarkerSize     int    `json:"markerSize"`
	MarkerSpacing  int    `json:"markerSpacing"`
	MarkerCountX   int    `json:"markerCountX"`
	MarkerCountY   int    `json:"markerCountY"`

	ScrollingMarkersEnabled bool   `json:"scrollingMarkersEnabled"`
	ScrollingMarkerColor    string `json:"scrollingMarkerColor"`
	ScrollingMarkerSize     int    `json:"scrollingMarkerSize"`
	ScrollingMarkerSpacing  int    `json:"scrollingMarkerSpacing"`
	ScrollingMarkerCountX   int    `json:"scrollingMarkerCountX"`
	ScrollingMarkerCountY   int    `json:"scrollingMarkerCountY"`
	ScrollDirection         string `json:"scrollDirection"`
	ScrollingMomentum       int    `json:"scrollingMomentum"`
}

type StatusPreset struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Color string `json:"color"`
}

func DefaultLockScreenSettings() *LockScreenSettings {
	return &LockScreenSettings{
		Mode:          "auto",
		ShowTime:      true,
		ShowDate:      true,
		ShowCamera:    true,
		BackgroundDim: 0.3,
	}
}

func DefaultVfxSettings() *VfxSettings {
	return &VfxSettings{
		Mode:        "green",
		GreenColor:  "#00FF00",
		BlueColor:   "#0000FF",
		MarkerColor: "#FFFFFF",
		MarkerSize:  12, MarkerSpacing: 120,
		MarkerCountX: 4, MarkerCountY: 6,
		ScrollingMarkerColor: "#FFFFFF",
		ScrollingMarkerSize:  12, ScrollingMarkerSpacing: 120,
		ScrollingMarkerCountX: 4, ScrollingMarkerCountY: 6,
		ScrollDirection:   "vertical",
		ScrollingMomentum: 50,
	}
}

func DefaultTheme() *Theme {
	return &Theme{Primary: "#FF6B6B", Background: "#000000"}
}
