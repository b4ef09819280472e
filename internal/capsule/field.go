// Package capsule defines the shared data model of the selective-disclosure
// core: metadata captured alongside a photo, the field vocabulary, claims, the
// public Capsule wire format and the private Vault record.
package capsule

// Field identifies a committed metadata attribute. The vocabulary is fixed:
// every capsule commits to the same candidate fields (plus the two
// locked-content pseudo-fields when the corresponding lock is enabled).
type Field string

const (
	FieldDateExact         Field = "date_exact"
	FieldDateDay           Field = "date_day"
	FieldDateMonth         Field = "date_month"
	FieldDateYear          Field = "date_year"
	FieldLocationExact     Field = "location_exact"
	FieldLocationCity      Field = "location_city"
	FieldLocationCountry   Field = "location_country"
	FieldLocationContinent Field = "location_continent"
	FieldDeviceInfo        Field = "device_info"
	FieldDevicePlatform    Field = "device_platform"
	FieldDeviceType        Field = "device_type"
	FieldImageHash         Field = "image_hash"
	FieldImageCID          Field = "image_cid"

	// Locked-content pseudo-fields. Their commitments are computed like any
	// other field, but the payloads are only ever exposed through the
	// time-lock / wallet-lock unlock paths.
	FieldTimeLockData     Field = "time_lock_data"
	FieldReceiverLockData Field = "receiver_lock_data"
)

// CandidateFields are the fields every capsule snapshots, salts and commits
// to, independent of which disclosures are enabled.
var CandidateFields = []Field{
	FieldDateExact,
	FieldDateDay,
	FieldDateMonth,
	FieldDateYear,
	FieldLocationExact,
	FieldLocationCity,
	FieldLocationCountry,
	FieldLocationContinent,
	FieldDeviceInfo,
	FieldDevicePlatform,
	FieldDeviceType,
	FieldImageHash,
}
