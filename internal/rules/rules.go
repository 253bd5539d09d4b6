// Package rules holds the tunable keyword lists, weight tables, and
// priority-deal definitions the analyzer is constructed with. A Rules value
// is plain data: it carries no logic and is never mutated after
// construction, so two analyzers may safely share one Rules value across
// goroutines.
package rules

// PriorityRule describes one auto-include staple: a deal qualifies when its
// normalized per-pound price is at or under MaxPricePerLb, its category is
// one of Categories, and its product name contains a keyword while containing
// none of the exclude keywords. Rules are evaluated in slice order.
type PriorityRule struct {
	Name            string   `yaml:"name"`
	Keywords        []string `yaml:"keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`
	MaxPricePerLb   float64  `yaml:"max_price_per_lb"`
	Categories      []string `yaml:"categories"`
	BonusScore      int      `yaml:"bonus_score"`
}

// Rules is the full analyzer configuration.
type Rules struct {
	StoreBrands        []string       `yaml:"store_brands"`
	ExcludedCategories []string       `yaml:"excluded_categories"`
	SupplementKeywords []string       `yaml:"supplement_keywords"`
	ExcludedProducts   []string       `yaml:"excluded_products"`
	PriorityRules      []PriorityRule `yaml:"priority_deals"`
	PremiumKeywords    []string       `yaml:"premium_keywords"`
	ViralKeywords      []string       `yaml:"viral_keywords"`
	MajorBrands        []string       `yaml:"major_brands"`
	CategoryWeights    map[string]int `yaml:"category_weights"`

	Dedupe            bool `yaml:"dedupe"`
	BalanceCategories bool `yaml:"balance_categories"`
}

// Default returns the built-in rule set covering HEB, Smart & Final,
// Sprouts, Amazon Fresh, and Whole Foods flyers.
func Default() *Rules {
	return &Rules{
		StoreBrands: []string{
			// Amazon/Whole Foods
			"Amazon Grocery", "Amazon Kitchen", "Amazon Fresh",
			"365 Brand", "365 by Whole Foods", "365 Everyday Value",

			// Major chains
			"Kirkland", "Great Value", "Market Pantry", "Simple Truth",
			"O Organics", "Kroger", "Target", "Safeway SELECT",

			// Smart & Final
			"First Street",

			// HEB brands
			"H-E-B", "Hill Country Fare", "Central Market", "Higher Harvest",
			"HEB",

			// Sprouts brands
			"Sprouts", "Real Root by Sprouts", "Sprouts Farmers Market",

			// Other regional
			"Albertsons", "Vons", "Pavilions", "Ralphs", "Food Lion",
		},

		ExcludedCategories: []string{
			"Beer, Wine & Spirits",
			"ALCOHOL",
			"BEVERAGES_ALCOHOL",
		},

		SupplementKeywords: []string{
			"supplement", "vitamin", "pill", "capsule",
			"tablet", "probiotic", "greens powder", "protein powder",
			"multivitamin", "omega-3", "turmeric", "ashwagandha",
			"collagen", "magnesium", "zinc", "elderberry",
		},

		ExcludedProducts: []string{
			"hot dog", "hotdog", "hot dogs", "hotdogs",
			"franks", "wiener", "wieners",
		},

		PriorityRules: []PriorityRule{
			{
				Name:            "chicken_breast",
				Keywords:        []string{"chicken breast", "chicken thigh", "chicken thighs"},
				ExcludeKeywords: []string{"boneless skinless chicken breast meal", "rotisserie"},
				MaxPricePerLb:   3.00,
				Categories:      []string{"MEAT", "Meat", "Meat & Seafood"},
				BonusScore:      30,
			},
			{
				Name: "steak",
				Keywords: []string{"steak", "ribeye", "sirloin", "ny strip", "t-bone",
					"porterhouse", "flank", "skirt", "filet"},
				ExcludeKeywords: []string{"salisbury", "patties", "burger"},
				MaxPricePerLb:   10.00,
				Categories:      []string{"MEAT", "Meat", "Meat & Seafood"},
				BonusScore:      25,
			},
			{
				Name:            "ground_beef",
				Keywords:        []string{"ground beef", "ground chuck", "hamburger"},
				ExcludeKeywords: []string{"patties", "burger patty", "ground turkey"},
				MaxPricePerLb:   6.00,
				Categories:      []string{"MEAT", "Meat", "Meat & Seafood"},
				BonusScore:      20,
			},
		},

		PremiumKeywords: []string{
			// Meat
			"ribeye", "prime rib", "flank steak", "sirloin", "filet mignon",
			"ny strip", "porterhouse", "wagyu", "angus", "grass-fed",
			"organic chicken", "air-chilled", "heritage pork",

			// Seafood
			"salmon", "atlantic salmon", "king salmon", "sockeye",
			"shrimp", "jumbo shrimp", "scallops", "crab", "lobster",
			"halibut", "sea bass", "ahi tuna", "swordfish",

			// Produce
			"honeycrisp", "cotton candy grape", "dekopon", "sumo citrus",
			"organic", "heirloom", "persimmon", "dragon fruit",
			"artisan", "specialty mushroom", "truffle",
		},

		ViralKeywords: []string{
			"cotton candy", "party pack", "family size", "jumbo", "giant",
			"mega", "ultimate", "variety pack", "assorted", "party size",
			"super bowl", "game day", "tailgate", "celebration",
			"viral", "tiktok", "trending",
		},

		MajorBrands: []string{
			// Snacks
			"doritos", "lays", "cheetos", "fritos", "ruffles", "tostitos",
			"pringles", "kettle", "popchips", "smartfood", "pirates booty",

			// Beverages
			"coca-cola", "coke", "pepsi", "sprite", "mountain dew",
			"dr pepper", "7up", "canada dry", "schweppes", "crush",
			"capri sun", "gatorade", "powerade", "vitamin water",

			// Chocolate/Candy
			"hershey", "reese's", "kit kat", "m&m", "snickers", "twix",
			"milky way", "skittles", "starburst", "sour patch", "haribo",

			// Frozen
			"ben & jerry", "breyer", "haagen-dazs", "talenti", "outshine",
			"drumstick", "klondike", "good humor", "magnum",

			// Dairy
			"dannon", "chobani", "yoplait", "fage", "siggi", "oikos",
			"tillamook", "kerrygold", "organic valley", "horizon",

			// Meat/Protein
			"tyson", "perdue", "foster farms", "applegate", "hormel",
			"oscar mayer", "hillshire farm", "jimmy dean", "butterball",

			// Pantry/Packaged
			"kraft", "philadelphia", "velveeta", "barilla", "prego",
			"ragu", "newman's own", "rao's", "classico", "bertolli",
			"general mills", "kellogg", "quaker", "post", "nabisco",
			"oreo", "chips ahoy", "ritz", "triscuit", "wheat thins",
			"dave's killer bread", "artesano", "bimbo",

			// Natural/Organic
			"annie's", "stonyfield", "nature's path", "kashi",
			"amy's", "dr praeger", "gardein", "beyond meat",
		},

		CategoryWeights: map[string]int{
			// Meat (highest engagement)
			"MEAT":           25,
			"Meat":           25,
			"Meat & Seafood": 25,
			"SEAFOOD":        25,
			"Seafood":        25,
			"DELI":           20,
			"Deli":           20,

			// Produce (highest engagement)
			"PRODUCE":         25,
			"Produce":         25,
			"Fresh Produce":   25,
			"Organic Produce": 25,

			// Snacks & Beverages (high engagement)
			"SNACKS":    20,
			"Snacks":    20,
			"BEVERAGES": 20,
			"Beverages": 20,
			"Drinks":    20,

			// Frozen (medium-high)
			"FROZEN":       15,
			"Frozen":       15,
			"Frozen Foods": 15,
			"Ice Cream":    18,

			// Prepared Foods (medium-high)
			"PREPARED_FOODS": 15,
			"Prepared Foods": 15,
			"Ready to Eat":   15,

			// Dairy & Eggs (medium)
			"DAIRY_EGGS":   12,
			"Dairy":        12,
			"Dairy & Eggs": 12,

			// Bakery (medium)
			"BAKERY":            12,
			"Bakery":            12,
			"Commercial Bakery": 10,
			"Fresh Bakery":      12,

			// Pantry (lower)
			"PANTRY":       10,
			"Pantry":       10,
			"Grocery":      10,
			"Canned Goods": 8,

			// Household (lowest)
			"HOUSEHOLD":      5,
			"Household":      5,
			"Cleaning":       5,
			"Paper Products": 5,

			// Health & Beauty (lowest)
			"HEALTH_BEAUTY":   5,
			"Health & Beauty": 5,
			"Personal Care":   5,

			// Pet (low)
			"PET":          5,
			"Pet":          5,
			"Pet Supplies": 5,
		},

		Dedupe:            true,
		BalanceCategories: true,
	}
}
