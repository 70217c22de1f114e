package catalog

// seedProducts is the launch collection shown before any CMS edits.
var seedProducts = []Product{
	{
		ID:          "p1",
		Name:        "Sapphire Midnight Gown",
		Category:    CategoryParty,
		Price:       450,
		Description: "An elegant deep blue gown with intricate silver embroidery, perfect for evening galas.",
		ImageURL:    "https://picsum.photos/seed/dress1/600/900",
	},
	{
		ID:          "p2",
		Name:        "Crimson Bridal Lehenga",
		Category:    CategoryWedding,
		Price:       1200,
		Description: "Traditional red bridal wear with heavy gold zardozi work, crafted for your special day.",
		ImageURL:    "https://picsum.photos/seed/dress2/600/900",
	},
	{
		ID:          "p3",
		Name:        "Emerald Silk Saree",
		Category:    CategoryWedding,
		Price:       850,
		Description: "Pure silk saree in emerald green, featuring hand-woven motifs.",
		ImageURL:    "https://picsum.photos/seed/dress3/600/900",
	},
	{
		ID:          "p4",
		Name:        "Champagne Cocktail Dress",
		Category:    CategoryParty,
		Price:       320,
		Description: "A chic, modern cut dress in champagne gold, ideal for cocktail parties.",
		ImageURL:    "https://picsum.photos/seed/dress4/600/900",
	},
}

var seedPromos = []Promo{
	{Code: "LUXE10", DiscountPercent: 10},
	{Code: "WEDDING20", DiscountPercent: 20},
}
