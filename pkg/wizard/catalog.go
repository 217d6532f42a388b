package wizard

// Option is one selectable choice within a wizard step.
type Option struct {
	ID          string
	Name        string
	Description string
	Popular     bool
}

// OptionsFor returns the choice catalog for a selection key. Keys without a
// fixed catalog (booleans, counts) return nil.
func OptionsFor(key string) []Option {
	return catalogs[key]
}

var catalogs = map[string][]Option{
	"size": {
		{ID: "starter", Name: "Starter", Description: "12x24 - Best for: Small yards, couples, plunge pools"},
		{ID: "classic", Name: "Classic", Description: "15x30 - Best for: Average yards, families", Popular: true},
		{ID: "family", Name: "Family", Description: "16x36 - Best for: Larger yards, kids, entertaining"},
		{ID: "resort", Name: "Resort", Description: "18x40 - Best for: Large properties, serious swimmers"},
	},
	"shape": {
		{ID: "rectangle", Name: "Rectangle"},
		{ID: "roman", Name: "Roman"},
		{ID: "grecian", Name: "Grecian"},
		{ID: "kidney", Name: "Kidney"},
		{ID: "freeform", Name: "Freeform"},
		{ID: "lazy_l", Name: "Lazy L"},
		{ID: "oval", Name: "Oval"},
	},
	"finish": {
		{ID: "white_plaster", Name: "White Plaster", Description: "Light turquoise/aqua water"},
		{ID: "pebble_blue", Name: "Pebble Tec - Blue", Description: "Deep ocean blue water", Popular: true},
		{ID: "pebble_midnight", Name: "Pebble Tec - Midnight", Description: "Dark navy/black water"},
		{ID: "quartz_blue", Name: "Quartz - Ocean Blue", Description: "Vibrant blue water"},
		{ID: "quartz_aqua", Name: "Quartz - Caribbean", Description: "Bright Caribbean aqua water"},
		{ID: "glass_tile", Name: "Glass Tile", Description: "Crystal clear with shimmer"},
	},
	"deck_material": {
		{ID: "travertine", Name: "Travertine", Popular: true},
		{ID: "pavers", Name: "Pavers"},
		{ID: "brushed_concrete", Name: "Brushed Concrete"},
		{ID: "stamped_concrete", Name: "Stamped Concrete"},
		{ID: "flagstone", Name: "Flagstone"},
		{ID: "wood", Name: "Wood Deck"},
	},
	"deck_color": {
		{ID: "cream", Name: "Cream"},
		{ID: "tan", Name: "Tan"},
		{ID: "gray", Name: "Gray"},
		{ID: "terracotta", Name: "Terracotta"},
		{ID: "brown", Name: "Brown"},
		{ID: "natural", Name: "Natural Stone"},
	},
	"water_features": {
		{ID: "rock_waterfall", Name: "Rock Waterfall"},
		{ID: "bubblers", Name: "Bubblers / Fountain Jets"},
		{ID: "scuppers", Name: "Scuppers"},
		{ID: "fire_bowls", Name: "Fire Bowls"},
		{ID: "deck_jets", Name: "Deck Jets"},
	},
	"lighting": {
		{ID: "none", Name: "No Additional Lighting"},
		{ID: "pool_lights", Name: "LED Pool Lights"},
		{ID: "landscape", Name: "Landscape Lighting"},
		{ID: "both", Name: "Pool + Landscape Lights"},
	},
	"landscaping": {
		{ID: "none", Name: "Existing Only"},
		{ID: "tropical", Name: "Tropical Plants"},
		{ID: "desert", Name: "Desert/Modern"},
		{ID: "natural", Name: "Natural/Native"},
	},
	"furniture": {
		{ID: "none", Name: "No Furniture"},
		{ID: "basic", Name: "Lounge Chairs"},
		{ID: "full", Name: "Full Outdoor Set"},
	},
	"project_type": {
		{ID: "replace_existing", Name: "Replace Existing"},
		{ID: "new_opening", Name: "New Opening"},
		{ID: "enclose_patio", Name: "Enclose Patio"},
	},
	"door_type": {
		{ID: "none", Name: "No Doors"},
		{ID: "sliding_glass", Name: "Sliding Glass"},
		{ID: "accordion", Name: "Accordion"},
		{ID: "bi_fold", Name: "Bi-Fold"},
		{ID: "french", Name: "French"},
	},
	"window_type": {
		{ID: "single_hung", Name: "Single Hung", Description: "Bottom sash slides up, top is fixed"},
		{ID: "double_hung", Name: "Double Hung", Description: "Both sashes slide up and down", Popular: true},
		{ID: "casement", Name: "Casement", Description: "Hinged on side, swings outward"},
		{ID: "slider", Name: "Slider", Description: "Sash slides horizontally"},
		{ID: "picture", Name: "Picture", Description: "Fixed, non-operable for views"},
	},
	"window_style": {
		{ID: "modern", Name: "Modern"},
		{ID: "traditional", Name: "Traditional"},
		{ID: "colonial", Name: "Colonial"},
		{ID: "craftsman", Name: "Craftsman"},
	},
	"frame_material": {
		{ID: "vinyl", Name: "Vinyl", Description: "Low maintenance, energy efficient"},
		{ID: "wood", Name: "Wood", Description: "Classic beauty, paintable"},
		{ID: "fiberglass", Name: "Fiberglass", Description: "Strong, durable, low expansion"},
		{ID: "aluminum", Name: "Aluminum", Description: "Slim profiles, modern look"},
	},
	"frame_color": {
		{ID: "white", Name: "White"},
		{ID: "tan", Name: "Tan/Almond"},
		{ID: "brown", Name: "Brown"},
		{ID: "black", Name: "Black"},
		{ID: "bronze", Name: "Bronze"},
	},
	"grille_pattern": {
		{ID: "none", Name: "No Grilles", Description: "Clean, unobstructed view"},
		{ID: "colonial", Name: "Colonial", Description: "6 or 9 pane grid pattern"},
		{ID: "prairie", Name: "Prairie", Description: "Border grilles only"},
		{ID: "craftsman", Name: "Craftsman", Description: "Top section grilles only"},
		{ID: "diamond", Name: "Diamond", Description: "Diagonal pattern"},
	},
	"glass_option": {
		{ID: "clear", Name: "Clear", Description: "Maximum light and visibility"},
		{ID: "low_e", Name: "Low-E", Description: "Energy efficient coating"},
		{ID: "frosted", Name: "Frosted", Description: "Privacy with diffused light"},
		{ID: "obscure", Name: "Obscure", Description: "Textured privacy glass"},
		{ID: "rain", Name: "Rain", Description: "Decorative rain pattern"},
	},
	"hardware_finish": {
		{ID: "white", Name: "White"},
		{ID: "brushed_nickel", Name: "Brushed Nickel"},
		{ID: "oil_rubbed_bronze", Name: "Oil-Rubbed Bronze"},
		{ID: "brass", Name: "Brass"},
	},
	"trim_style": {
		{ID: "standard", Name: "Standard", Description: "Simple flat trim"},
		{ID: "craftsman", Name: "Craftsman", Description: "Bold with header detail"},
		{ID: "colonial", Name: "Colonial", Description: "Classic profiled trim"},
		{ID: "modern", Name: "Modern Flat", Description: "Minimal, sleek profile"},
	},
	"roof_material": {
		{ID: "asphalt_3tab", Name: "Asphalt - 3-Tab", Description: "Affordable, classic look"},
		{ID: "asphalt_architectural", Name: "Asphalt - Architectural", Description: "Premium look, 30 year lifespan", Popular: true},
		{ID: "metal_standing_seam", Name: "Metal - Standing Seam", Description: "Modern, durable, 50+ years", Popular: true},
		{ID: "metal_corrugated", Name: "Metal - Corrugated", Description: "Industrial/farmhouse look"},
		{ID: "clay_tile", Name: "Clay Tile", Description: "Mediterranean style, 100+ years"},
		{ID: "concrete_tile", Name: "Concrete Tile", Description: "Durable, fire-resistant"},
		{ID: "slate", Name: "Natural Slate", Description: "Premium stone, 100+ years"},
		{ID: "wood_shake", Name: "Wood Shake", Description: "Rustic natural look"},
		{ID: "tpo_flat", Name: "TPO (Flat Roof)", Description: "For flat/low-slope roofs"},
	},
	"roof_color": {
		{ID: "charcoal", Name: "Charcoal"},
		{ID: "black", Name: "Black"},
		{ID: "brown", Name: "Brown"},
		{ID: "tan", Name: "Tan"},
		{ID: "terracotta", Name: "Terracotta"},
		{ID: "slate_gray", Name: "Slate Gray"},
		{ID: "weathered_wood", Name: "Weathered Wood"},
		{ID: "green", Name: "Forest Green"},
		{ID: "blue", Name: "Colonial Blue"},
		{ID: "white", Name: "White"},
	},
	"solar_option": {
		{ID: "none", Name: "No Solar", Description: "Roof only, no solar panels"},
		{ID: "partial", Name: "Partial Coverage", Description: "Solar on part of the roof", Popular: true},
		{ID: "full_south", Name: "Full South Roof", Description: "Maximize solar on south-facing"},
		{ID: "full_all", Name: "Maximum Coverage", Description: "Solar on all viable areas"},
	},
	"gutter_option": {
		{ID: "none", Name: "No Gutters", Description: "No gutter system"},
		{ID: "standard", Name: "Standard Gutters", Description: "Aluminum K-style gutters", Popular: true},
		{ID: "seamless", Name: "Seamless Gutters", Description: "Premium seamless system"},
		{ID: "copper", Name: "Copper Gutters", Description: "Premium copper half-round"},
	},
}

// ValidOption reports whether id is a member of the key's catalog. Keys
// without a catalog accept any value.
func ValidOption(key, id string) bool {
	options, ok := catalogs[key]
	if !ok {
		return true
	}
	for _, opt := range options {
		if opt.ID == id {
			return true
		}
	}
	return false
}
