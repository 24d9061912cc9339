package model

import (
	"fmt"
	"strings"
)

type Region string

const (
	RegionUS      Region = "US"
	RegionEUCEE   Region = "EU_CEE"
	RegionEUWest  Region = "EU_West"
	RegionNonEU   Region = "Non_EU"
	RegionGeorgia Region = "Georgia"
	RegionTurkiye Region = "Turkiye"
	RegionUkraine Region = "Ukraine"

	// GlobalRegion labels the project-wide breakdown. It is not a priced region.
	GlobalRegion Region = "GLOBAL"
)

var allRegions = []Region{
	RegionUS,
	RegionEUCEE,
	RegionEUWest,
	RegionNonEU,
	RegionGeorgia,
	RegionTurkiye,
	RegionUkraine,
}

// AllRegions returns the supported regions in presentation order.
func AllRegions() []Region {
	out := make([]Region, len(allRegions))
	copy(out, allRegions)
	return out
}

// ParseRegion accepts the canonical code ("EU_CEE") and the lower-case alias the
// calculator form posts ("eu_cee", "eucee").
func ParseRegion(raw string) (Region, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "_", ""))
	for _, r := range allRegions {
		if strings.ToLower(strings.ReplaceAll(string(r), "_", "")) == key {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", raw)
}

func (r Region) String() string {
	return string(r)
}

func (r Region) Valid() bool {
	switch r {
	case RegionUS, RegionEUCEE, RegionEUWest, RegionNonEU, RegionGeorgia, RegionTurkiye, RegionUkraine:
		return true
	default:
		return false
	}
}

func (r Region) IsUS() bool {
	return r == RegionUS
}

func (r Region) IsEU() bool {
	switch r {
	case RegionEUCEE, RegionEUWest:
		return true
	case RegionUS, RegionNonEU, RegionGeorgia, RegionTurkiye, RegionUkraine:
		return false
	default:
		return false
	}
}

func (r Region) IsNonEU() bool {
	switch r {
	case RegionNonEU, RegionGeorgia, RegionTurkiye, RegionUkraine:
		return true
	case RegionUS, RegionEUCEE, RegionEUWest:
		return false
	default:
		return false
	}
}

// FacesRegulatoryAuthority reports whether the region files with a national
// regulatory authority. The US is covered by the central IRB only.
func (r Region) FacesRegulatoryAuthority() bool {
	return r.IsEU() || r.IsNonEU()
}

type VisitType string

const (
	VisitOnSite VisitType = "on-site"
	VisitRemote VisitType = "remote"
)

func ParseVisitType(raw string) (VisitType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on-site", "onsite", "on_site":
		return VisitOnSite, nil
	case "remote":
		return VisitRemote, nil
	default:
		return "", fmt.Errorf("unknown visit type %q", raw)
	}
}
