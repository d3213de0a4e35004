package registry

// dataset keys referenced by the auto-detect heuristics
const (
	KeyFairfaxBMPs    = "fairfax_bmps"
	KeyDCLandscape    = "dc_landscape"
	KeyTMDLStructures = "tmdl_structures"
)

// Builtin returns the descriptor table for the supported upstream services.
// Endpoints are ArcGIS REST layer URLs; some are reachable only from inside
// the agency network.
func Builtin() []Dataset {
	return []Dataset{
		{
			Key:        KeyFairfaxBMPs,
			Label:      "Fairfax County Stormwater BMPs",
			Aliases:    []string{"fairfax"},
			Convention: ConvNumberSuffix,
			Layers: []Layer{
				{
					Endpoint:     "https://www.fairfaxcounty.gov/mercator/rest/services/DPWES/SWMaintenance/MapServer/0",
					IDFields:     []string{"FACILITY_ID", "BMP_ID"},
					GeometryHint: "point",
				},
			},
		},
		{
			Key:     KeyDCLandscape,
			Label:   "DC Landscape Features",
			Aliases: []string{"landscape"},
			Layers: []Layer{
				{
					Endpoint:     "https://maps2.dcgis.dc.gov/dcgis/rest/services/DDOT/Landscape/MapServer/4",
					IDFields:     []string{"ASSET_ID", "FACILITY_ID"},
					GeometryHint: "polygon",
				},
			},
		},
		{
			Key:     KeyTMDLStructures,
			Label:   "TMDL Restoration Structures",
			Aliases: []string{"tmdl"},
			Layers: []Layer{
				{
					Endpoint:     "https://maps2.dcgis.dc.gov/dcgis/rest/services/DOEE/TMDL/MapServer/0",
					IDFields:     []string{"PROJ_ID", "STRUCT_ID"},
					GeometryHint: "line",
				},
				{
					Endpoint:     "https://maps2.dcgis.dc.gov/dcgis/rest/services/DOEE/TMDL/MapServer/1",
					IDFields:     []string{"OUTFALL_ID", "PROJ_ID"},
					GeometryHint: "point",
				},
				{
					Endpoint:     "https://maps2.dcgis.dc.gov/dcgis/rest/services/DOEE/TMDL/MapServer/2",
					IDFields:     []string{"TRAP_ID", "PROJ_ID"},
					GeometryHint: "point",
				},
			},
		},
	}
}

// Default builds the registry from the builtin table.
func Default() (*Registry, error) {
	return New(Builtin())
}
