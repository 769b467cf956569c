package analytics

// FallbackCategory is assigned to descriptions the grouping table does not know.
const FallbackCategory = "Other Issues"

// MaintenanceCategory is the category pinned to DefaultColor.
const MaintenanceCategory = "Maintenance Issues"

var descriptionGroups = map[string]string{
	"Certificate of Occupancy":       "Occupancy Issues",
	"Maintenance":                    MaintenanceCategory,
	"Failure to Obtain Permit":       "Permit Issues",
	"Building or Use of Premise req": "Premise Use Issues",
	"Unsafe Structures":              "Safety Issues",
	"No use of premises permit":      "Permit Issues",
	"Garages":                        "Specific Area Issues",
	"Emergency escape and rescue":    "Safety Issues",
}

// Normalize maps a raw violation description to its grouped category.
// Missing and unknown descriptions fall back to FallbackCategory.
func Normalize(description string) string {
	if group, ok := descriptionGroups[description]; ok {
		return group
	}
	return FallbackCategory
}

// Categories returns every category Normalize can produce, sorted.
func Categories() []string {
	seen := map[string]struct{}{FallbackCategory: {}}
	for _, group := range descriptionGroups {
		seen[group] = struct{}{}
	}
	return sortedKeys(seen)
}
