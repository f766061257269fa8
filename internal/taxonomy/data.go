package taxonomy

// builtinMerchants is the static merchant map, calibrated for Philippine
// bank and e-wallet statements. Keys are uppercase; multi-word keys beat
// their shorter substrings during partial matching (GRABFOOD before GRAB).
var builtinMerchants = []Merchant{
	// Food & Dining
	{Key: "JOLLIBEE", DisplayName: "Jollibee", Category: "Food & Dining"},
	{Key: "MCDO", DisplayName: "McDonald's", Category: "Food & Dining"},
	{Key: "KFC", DisplayName: "KFC", Category: "Food & Dining"},
	{Key: "CHOWKING", DisplayName: "Chowking", Category: "Food & Dining"},
	{Key: "MANG INASAL", DisplayName: "Mang Inasal", Category: "Food & Dining"},
	{Key: "GREENWICH", DisplayName: "Greenwich", Category: "Food & Dining"},
	{Key: "SHAKEYS", DisplayName: "Shakey's", Category: "Food & Dining"},
	{Key: "STARBUCKS", DisplayName: "Starbucks", Category: "Food & Dining"},
	{Key: "DUNKIN", DisplayName: "Dunkin'", Category: "Food & Dining"},
	{Key: "GRABFOOD", DisplayName: "GrabFood", Category: "Food & Dining"},
	{Key: "FOODPANDA", DisplayName: "foodpanda", Category: "Food & Dining"},

	// Groceries
	{Key: "SM SUPERMARKET", DisplayName: "SM Supermarket", Category: "Groceries"},
	{Key: "PUREGOLD", DisplayName: "Puregold", Category: "Groceries"},
	{Key: "ROBINSONS SUPERMARKET", DisplayName: "Robinsons Supermarket", Category: "Groceries"},
	{Key: "WALTERMART", DisplayName: "WalterMart", Category: "Groceries"},
	{Key: "LANDERS", DisplayName: "Landers", Category: "Groceries"},
	{Key: "S&R", DisplayName: "S&R", Category: "Groceries"},
	{Key: "7-ELEVEN", DisplayName: "7-Eleven", Category: "Groceries"},

	// Transportation
	{Key: "GRAB", DisplayName: "Grab", Category: "Transportation"},
	{Key: "ANGKAS", DisplayName: "Angkas", Category: "Transportation"},
	{Key: "JOYRIDE", DisplayName: "JoyRide", Category: "Transportation"},
	{Key: "PETRON", DisplayName: "Petron", Category: "Transportation"},
	{Key: "SHELL", DisplayName: "Shell", Category: "Transportation"},
	{Key: "CALTEX", DisplayName: "Caltex", Category: "Transportation"},
	{Key: "BEEP", DisplayName: "Beep Card", Category: "Transportation"},

	// Shopping
	{Key: "SHOPEE", DisplayName: "Shopee", Category: "Shopping"},
	{Key: "LAZADA", DisplayName: "Lazada", Category: "Shopping"},
	{Key: "SM STORE", DisplayName: "The SM Store", Category: "Shopping"},
	{Key: "UNIQLO", DisplayName: "Uniqlo", Category: "Shopping"},
	{Key: "DECATHLON", DisplayName: "Decathlon", Category: "Shopping"},
	{Key: "AMAZON", DisplayName: "Amazon", Category: "Shopping"},

	// Utilities
	{Key: "MERALCO", DisplayName: "Meralco", Category: "Utilities"},
	{Key: "MAYNILAD", DisplayName: "Maynilad", Category: "Utilities"},
	{Key: "MANILA WATER", DisplayName: "Manila Water", Category: "Utilities"},
	{Key: "GLOBE", DisplayName: "Globe Telecom", Category: "Utilities"},
	{Key: "SMART", DisplayName: "Smart Communications", Category: "Utilities"},
	{Key: "PLDT", DisplayName: "PLDT", Category: "Utilities"},
	{Key: "CONVERGE", DisplayName: "Converge", Category: "Utilities"},

	// Entertainment
	{Key: "NETFLIX", DisplayName: "Netflix", Category: "Entertainment"},
	{Key: "SPOTIFY", DisplayName: "Spotify", Category: "Entertainment"},
	{Key: "DISNEY", DisplayName: "Disney+", Category: "Entertainment"},
	{Key: "STEAM", DisplayName: "Steam", Category: "Entertainment"},
	{Key: "YOUTUBE", DisplayName: "YouTube", Category: "Entertainment"},

	// Travel
	{Key: "CEBU PACIFIC", DisplayName: "Cebu Pacific", Category: "Travel"},
	{Key: "PHILIPPINE AIRLINES", DisplayName: "Philippine Airlines", Category: "Travel"},
	{Key: "AIRASIA", DisplayName: "AirAsia", Category: "Travel"},
	{Key: "AGODA", DisplayName: "Agoda", Category: "Travel"},
	{Key: "AIRBNB", DisplayName: "Airbnb", Category: "Travel"},
	{Key: "KLOOK", DisplayName: "Klook", Category: "Travel"},

	// Health & Personal Care
	{Key: "MERCURY DRUG", DisplayName: "Mercury Drug", Category: "Health & Personal Care"},
	{Key: "WATSONS", DisplayName: "Watsons", Category: "Health & Personal Care"},
	{Key: "SOUTHSTAR DRUG", DisplayName: "Southstar Drug", Category: "Health & Personal Care"},
	{Key: "GENERIKA", DisplayName: "Generika", Category: "Health & Personal Care"},

	// Bills & Fees
	{Key: "SSS", DisplayName: "SSS", Category: "Bills & Fees"},
	{Key: "PAG-IBIG", DisplayName: "Pag-IBIG", Category: "Bills & Fees"},
	{Key: "PHILHEALTH", DisplayName: "PhilHealth", Category: "Bills & Fees"},
}

// builtinVariations collapses common statement spellings to canonical keys.
var builtinVariations = map[string]string{
	"MCDONALDS":    "MCDO",
	"MCDONALD'S":   "MCDO",
	"MC DONALDS":   "MCDO",
	"JOLIBEE":      "JOLLIBEE",
	"7-11":         "7-ELEVEN",
	"711":          "7-ELEVEN",
	"SEVEN ELEVEN": "7-ELEVEN",
	"SNR":          "S&R",
	"PAL":          "PHILIPPINE AIRLINES",
	"SHOPEEPAY":    "SHOPEE",
	"PAGIBIG":      "PAG-IBIG",
}

// builtinCategories lists every category with its keyword set. Order is the
// keyword-match tie-break order.
var builtinCategories = []Category{
	{Name: "Food & Dining", Keywords: []string{
		"restaurant", "cafe", "coffee", "bakery", "grill", "diner",
		"eatery", "bbq", "pizza", "burger", "milktea", "food",
	}},
	{Name: "Groceries", Keywords: []string{
		"grocery", "supermarket", "minimart", "market", "mart",
	}},
	{Name: "Transportation", Keywords: []string{
		"taxi", "toll", "parking", "fuel", "gasoline", "jeep",
		"bus", "mrt", "lrt", "fare",
	}},
	{Name: "Utilities", Keywords: []string{
		"electric", "water", "internet", "telecom", "broadband", "utility",
	}},
	{Name: "Shopping", Keywords: []string{
		"mall", "store", "shop", "retail", "boutique",
	}},
	{Name: "Entertainment", Keywords: []string{
		"cinema", "movie", "game", "concert", "streaming",
	}},
	{Name: "Travel", Keywords: []string{
		"hotel", "airline", "flight", "resort", "booking", "travel",
	}},
	{Name: "Health & Personal Care", Keywords: []string{
		"pharmacy", "drug", "clinic", "hospital", "dental", "salon", "spa",
	}},
	{Name: "Bills & Fees", Keywords: []string{
		"fee", "charge", "penalty", "membership", "insurance", "loan",
	}},
	{Name: "Income", Keywords: []string{
		"salary", "payroll", "interest", "refund", "remittance", "deposit",
	}},
}
