package capsule

// MediaKind classifies the captured content.
type MediaKind string

const (
	MediaKindPhoto MediaKind = "photo"
	MediaKindVideo MediaKind = "video"
)

// Location is the optional geodata attached to a capture. City, country and
// continent are derived strings supplied by the capture step; any of them may
// be empty.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Continent string  `json:"continent,omitempty"`
}

// Metadata is the ephemeral output of the capture step. It is consumed once
// by the assembler; after capsule creation the only copies of its sensitive
// values live in the private vault.
type Metadata struct {
	// Timestamp is the capture time in milliseconds since the epoch.
	Timestamp int64 `json:"timestamp"`

	Location *Location `json:"location,omitempty"`

	// DeviceInfo is a free-form device descriptor, e.g. "iOS Camera".
	DeviceInfo string `json:"device_info"`

	// PhotoHash is the content hash of the captured media.
	PhotoHash string `json:"photo_hash"`

	// CID is the optional content-addressed storage identifier of the media,
	// set only if an upload succeeded.
	CID string `json:"cid,omitempty"`

	MediaKind MediaKind `json:"media_kind"`

	// DurationSeconds is set for video captures only.
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}
