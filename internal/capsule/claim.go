package capsule

import "sort"

// ClaimKind distinguishes machine-checked boolean claims from derived text
// claims. On the wire both collapse to strings; the tagged form keeps
// "true"/"false" comparisons out of consuming code.
type ClaimKind int

const (
	ClaimText ClaimKind = iota
	ClaimBoolean
)

// Claim is one public statement in a capsule.
type Claim struct {
	Name  string
	Kind  ClaimKind
	Value string
}

// Text builds a text claim.
func Text(name, value string) Claim {
	return Claim{Name: name, Kind: ClaimText, Value: value}
}

// Boolean builds a boolean claim; the wire value is "true" or "false".
func Boolean(name string, v bool) Claim {
	value := "false"
	if v {
		value = "true"
	}
	return Claim{Name: name, Kind: ClaimBoolean, Value: value}
}

// Bool reports the boolean value of a boolean claim.
func (c Claim) Bool() bool {
	return c.Kind == ClaimBoolean && c.Value == "true"
}

// Well-known claim names that are not content disclosures. The lock markers
// are public even while the locked payloads stay private.
const (
	ClaimTimeLockUntil  = "time_lock_until"
	ClaimTimeLockType   = "time_lock_type"
	ClaimAllowedAddress = "allowed_address"
	ClaimDeviceTrusted  = "device_trusted"
)

// ClaimsToWire flattens claims into the string-keyed wire mapping. Keys are
// unique; insertion order is irrelevant on the wire.
func ClaimsToWire(claims []Claim) map[string]string {
	m := make(map[string]string, len(claims))
	for _, c := range claims {
		m[c.Name] = c.Value
	}
	return m
}

// ClaimsFromWire lifts the wire mapping back into tagged claims. Values that
// are exactly "true"/"false" are treated as booleans; everything else is text.
// Claims are returned in name order so callers get stable output.
func ClaimsFromWire(m map[string]string) []Claim {
	claims := make([]Claim, 0, len(m))
	for name, value := range m {
		if value == "true" || value == "false" {
			claims = append(claims, Claim{Name: name, Kind: ClaimBoolean, Value: value})
			continue
		}
		claims = append(claims, Text(name, value))
	}
	sort.Slice(claims, func(i, j int) bool { return claims[i].Name < claims[j].Name })
	return claims
}
