package spec

import (
	"strconv"
	"strings"
)

type Generation string

const (
	Gen4G Generation = "4G"
	Gen5G Generation = "5G"
)

type Core string

const (
	CoreEPC Core = "epc"
	CoreNSA Core = "nsa"
	CoreSA  Core = "sa"
)

type Backhaul string

const (
	BackhaulMicrowave Backhaul = "microwave"
	BackhaulFiber     Backhaul = "fiber"
)

type Sharing string

const (
	SharingBaseline Sharing = "baseline"
	SharingPassive  Sharing = "passive"
	SharingActive   Sharing = "active"
	SharingShared   Sharing = "shared"
)

// Policy is a qualitative lever for the networks, spectrum and tax tags.
type Policy string

const (
	PolicyBaseline Policy = "baseline"
	PolicyLow      Policy = "low"
	PolicyHigh     Policy = "high"
	// PolicySRN is the single-rural-network networks lever.
	PolicySRN Policy = "srn"
)

// Strategy is the decoded generation_core_backhaul_sharing_networks_spectrum_tax tag.
type Strategy struct {
	Generation Generation
	Core       Core
	Backhaul   Backhaul
	Sharing    Sharing
	Networks   Policy
	Spectrum   Policy
	Tax        Policy
}

// String re-encodes the strategy tag.
func (s Strategy) String() string {
	return strings.Join([]string{
		string(s.Generation), string(s.Core), string(s.Backhaul), string(s.Sharing),
		string(s.Networks), string(s.Spectrum), string(s.Tax),
	}, "_")
}

// ParseStrategy decodes a seven-field strategy tag. Unknown tokens are parameter misses.
func ParseStrategy(tag string) (Strategy, error) {
	parts := strings.Split(tag, "_")
	if len(parts) != 7 {
		return Strategy{}, parameterMiss("strategy %q: want 7 fields, got %d", tag, len(parts))
	}
	s := Strategy{
		Generation: Generation(parts[0]),
		Core:       Core(parts[1]),
		Backhaul:   Backhaul(parts[2]),
		Sharing:    Sharing(parts[3]),
		Networks:   Policy(parts[4]),
		Spectrum:   Policy(parts[5]),
		Tax:        Policy(parts[6]),
	}

	switch s.Generation {
	case Gen4G:
		if s.Core != CoreEPC {
			return Strategy{}, parameterMiss("strategy %q: 4G requires core epc, got %q", tag, s.Core)
		}
	case Gen5G:
		if s.Core != CoreNSA && s.Core != CoreSA {
			return Strategy{}, parameterMiss("strategy %q: 5G requires core nsa or sa, got %q", tag, s.Core)
		}
	default:
		return Strategy{}, parameterMiss("strategy %q: unknown generation %q", tag, s.Generation)
	}

	switch s.Backhaul {
	case BackhaulMicrowave, BackhaulFiber:
	default:
		return Strategy{}, parameterMiss("strategy %q: unknown backhaul medium %q", tag, s.Backhaul)
	}

	switch s.Sharing {
	case SharingBaseline, SharingPassive, SharingActive, SharingShared:
	default:
		return Strategy{}, parameterMiss("strategy %q: unknown sharing keyword %q", tag, s.Sharing)
	}

	switch s.Networks {
	case PolicyBaseline, PolicySRN:
	default:
		return Strategy{}, parameterMiss("strategy %q: unknown networks policy %q", tag, s.Networks)
	}
	for _, p := range []Policy{s.Spectrum, s.Tax} {
		switch p {
		case PolicyBaseline, PolicyLow, PolicyHigh:
		default:
			return Strategy{}, parameterMiss("strategy %q: unknown policy level %q", tag, p)
		}
	}
	return s, nil
}

// Scenario holds the per-user busy-hour capacity targets (Mbps) by geotype.
type Scenario struct {
	Name     string
	Urban    float64
	Suburban float64
	Rural    float64
}

// ParseScenario decodes "S1_A_B_C" into urban=A, suburban=B, rural=C.
func ParseScenario(tag string) (Scenario, error) {
	parts := strings.Split(tag, "_")
	if len(parts) != 4 {
		return Scenario{}, parameterMiss("scenario %q: want 4 fields, got %d", tag, len(parts))
	}
	vals := make([]float64, 3)
	for i, p := range parts[1:] {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return Scenario{}, parameterMiss("scenario %q: field %d %q is not a non-negative integer", tag, i+2, p)
		}
		vals[i] = float64(v)
	}
	return Scenario{Name: parts[0], Urban: vals[0], Suburban: vals[1], Rural: vals[2]}, nil
}

// Target returns the per-user Mbps target for a canonical geotype.
func (s Scenario) Target(geotype string) float64 {
	switch geotype {
	case "urban":
		return s.Urban
	case "suburban":
		return s.Suburban
	default:
		return s.Rural
	}
}

// Band is a Frequency whose "NxM" bandwidth has been parsed.
type Band struct {
	FrequencyMHz int
	Channels     float64
	ChannelMHz   float64
}

// TotalMHz is the total bandwidth N×M.
func (b Band) TotalMHz() float64 { return b.Channels * b.ChannelMHz }

// Coverage reports whether the band is sub-1GHz.
func (b Band) Coverage() bool { return b.FrequencyMHz < 1000 }

// ParseBand decodes a Frequency's "NxM" bandwidth.
func ParseBand(f Frequency) (Band, error) {
	parts := strings.Split(strings.ToLower(f.Bandwidth), "x")
	if len(parts) != 2 {
		return Band{}, schemaError("bandwidth %q at %d MHz: want NxM", f.Bandwidth, f.FrequencyMHz)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || n <= 0 {
		return Band{}, schemaError("bandwidth %q at %d MHz: bad channel count", f.Bandwidth, f.FrequencyMHz)
	}
	m, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || m <= 0 {
		return Band{}, schemaError("bandwidth %q at %d MHz: bad channel width", f.Bandwidth, f.FrequencyMHz)
	}
	return Band{FrequencyMHz: f.FrequencyMHz, Channels: n, ChannelMHz: m}, nil
}
