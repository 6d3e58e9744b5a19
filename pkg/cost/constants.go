package cost

// Asset names as they appear in the cost catalog and the per-asset output fields.
const (
	SectorAntenna                   = "sector_antenna"
	RemoteRadioUnit                 = "remote_radio_unit"
	IOFronthaul                     = "io_fronthaul"
	Processing                      = "processing"
	IOS1X2                          = "io_s1_x2"
	ControlUnit                     = "control_unit"
	CoolingFans                     = "cooling_fans"
	DistributedPowerSupplyConverter = "distributed_power_supply_converter"
	BBUCabinet                      = "bbu_cabinet"
	CotsProcessing                  = "cots_processing"
	ION2N3                          = "io_n2_n3"
	LowLatencySwitch                = "low_latency_switch"
	Rack                            = "rack"
	CloudPowerSupplyConverter       = "cloud_power_supply_converter"
	CloudBackhaul                   = "cloud_backhaul"
	Power                           = "power"
	PowerGeneratorBatterySystem     = "power_generator_battery_system"
	Tower                           = "tower"
	CivilMaterials                  = "civil_materials"
	Transportation                  = "transportation"
	Installation                    = "installation"
	SiteRental                      = "site_rental"
	Router                          = "router"
	Fronthaul                       = "fronthaul"
	Backhaul                        = "backhaul"
	LocalNode                       = "local_node"
	RegionalEdge                    = "regional_edge"
	RegionalNode                    = "regional_node"
	CoreEdge                        = "core_edge"
	CoreNode                        = "core_node"
)

// Assets lists every asset in output column order.
var Assets = []string{
	SectorAntenna, RemoteRadioUnit, IOFronthaul, Processing, IOS1X2, ControlUnit,
	CoolingFans, DistributedPowerSupplyConverter, BBUCabinet, CotsProcessing, ION2N3,
	LowLatencySwitch, Rack, CloudPowerSupplyConverter, CloudBackhaul, Power,
	PowerGeneratorBatterySystem, Tower, CivilMaterials, Transportation, Installation,
	SiteRental, Router, Fronthaul, Backhaul, LocalNode, RegionalEdge, RegionalNode,
	CoreEdge, CoreNode,
}

// Type says how an asset's unit price is discounted.
type Type int

const (
	CapexAndOpex Type = iota
	CapexOnly
	OpexOnly
)

func (t Type) String() string {
	switch t {
	case CapexOnly:
		return "capex"
	case OpexOnly:
		return "opex"
	default:
		return "capex_and_opex"
	}
}

// TypeOf returns the cost type of an asset. Unlisted assets are capex_and_opex.
func TypeOf(asset string) Type {
	switch asset {
	case SiteRental, Power:
		return OpexOnly
	case BBUCabinet, Rack, Tower, CivilMaterials, Transportation, Installation:
		return CapexOnly
	default:
		return CapexAndOpex
	}
}

// Site structures. The greenfield lists are complete; upgrades reuse the
// existing site's tower and civils.
var (
	structure4G = []string{
		SectorAntenna, RemoteRadioUnit, IOFronthaul, Processing, IOS1X2, ControlUnit,
		CoolingFans, DistributedPowerSupplyConverter, PowerGeneratorBatterySystem,
		BBUCabinet, Tower, CivilMaterials, Transportation, Installation, SiteRental,
		Power, Router, Backhaul, RegionalEdge, RegionalNode, CoreEdge, CoreNode,
	}
	structure5GSA = []string{
		SectorAntenna, RemoteRadioUnit, IOFronthaul, CotsProcessing, ION2N3,
		LowLatencySwitch, Rack, CloudPowerSupplyConverter, CloudBackhaul, Tower,
		CivilMaterials, Transportation, Installation, SiteRental, Power,
		PowerGeneratorBatterySystem, Router, Fronthaul, Backhaul, LocalNode,
		RegionalEdge, RegionalNode, CoreEdge, CoreNode,
	}
	greenfieldOnly = map[string]bool{
		Tower: true, CivilMaterials: true, Transportation: true, PowerGeneratorBatterySystem: true,
	}
)

// Sharing whitelists: assets whose cost is divided by the operator count.
var passiveShared = set(CivilMaterials, Tower, Transportation, Installation, SiteRental, PowerGeneratorBatterySystem)

var activeShared = union(passiveShared, set(
	SectorAntenna, RemoteRadioUnit, IOFronthaul, Processing, IOS1X2, ControlUnit,
	CoolingFans, DistributedPowerSupplyConverter, BBUCabinet, CotsProcessing, ION2N3,
	LowLatencySwitch, Rack, CloudPowerSupplyConverter, Fronthaul, Power, Backhaul,
))

var allShared = set(Assets...)

// Groups re-bucket assets for reporting.
var (
	ranGroup = set(
		SectorAntenna, RemoteRadioUnit, IOFronthaul, Processing, IOS1X2, ControlUnit,
		CoolingFans, DistributedPowerSupplyConverter, BBUCabinet, CotsProcessing, ION2N3,
		LowLatencySwitch, Rack, CloudPowerSupplyConverter, Power,
	)
	backhaulGroup = set(Fronthaul, Backhaul, Router, CloudBackhaul)
	civilsGroup   = set(Tower, CivilMaterials, Transportation, Installation, SiteRental, PowerGeneratorBatterySystem)
	coreGroup     = set(LocalNode, RegionalEdge, RegionalNode, CoreEdge, CoreNode)
)

// Microwave link size buckets by distance in meters.
const (
	MicrowaveSmallMaxM  = 15000.0
	MicrowaveMediumMaxM = 30000.0
)

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func union(a, b map[string]bool) map[string]bool {
	m := make(map[string]bool, len(a)+len(b))
	for k := range a {
		m[k] = true
	}
	for k := range b {
		m[k] = true
	}
	return m
}
