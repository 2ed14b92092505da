// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import "github.com/syn-4ck/reptor/api"

// Tier is a plugin precedence level. Plugins from a higher tier overwrite
// plugins with the same name from lower tiers.
type Tier int

const (
	TierCore Tier = iota
	TierOfficial
	TierCommunity
	TierImporter
	TierExporter
	TierUser
)

// Tiers returns all tiers in loading order.
func Tiers() []Tier {
	return []Tier{TierCore, TierOfficial, TierCommunity, TierImporter, TierExporter, TierUser}
}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierCore:
		return "core"
	case TierOfficial:
		return "official"
	case TierCommunity:
		return "community"
	case TierImporter:
		return "importer"
	case TierExporter:
		return "exporter"
	case TierUser:
		return "user"
	default:
		return "unknown"
	}
}

// Origin returns the origin of plugins from this tier.
func (t Tier) Origin() api.Origin {
	switch t {
	case TierCommunity:
		return api.OriginCommunity
	case TierUser:
		return api.OriginPrivate
	default:
		return api.OriginCore
	}
}
