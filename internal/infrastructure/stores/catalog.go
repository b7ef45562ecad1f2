package stores

import "github.com/pricelens/backend/internal/domain"

// Catalog returns the static UK retailer reference data. Built once at
// process start; callers must treat the result as read-only.
//
// Alias strings are already normalized (lowercase, punctuation the resolver
// keeps — & and hyphens — preserved) and must stay disjoint across stores.
func Catalog() []domain.StoreIdentity {
	return []domain.StoreIdentity{
		{
			ID:          "tesco",
			DisplayName: "Tesco",
			BrandColor:  "#00539F",
			StoreType:   domain.StoreTypeSupermarket,
			Aliases:     []string{"tesco", "tescos", "tesco express", "tesco extra", "tesco metro", "tesco superstore"},
			MarketShare: 27.5,
		},
		{
			ID:          "sainsburys",
			DisplayName: "Sainsbury's",
			BrandColor:  "#F06C00",
			StoreType:   domain.StoreTypeSupermarket,
			Aliases:     []string{"sainsburys", "sainsbury", "sainsburys local", "js sainsbury"},
			MarketShare: 15.2,
		},
		{
			ID:          "asda",
			DisplayName: "Asda",
			BrandColor:  "#78BE20",
			StoreType:   domain.StoreTypeSupermarket,
			Aliases:     []string{"asda", "asda superstore", "asda supermarket"},
			MarketShare: 13.6,
		},
		{
			ID:          "aldi",
			DisplayName: "Aldi",
			BrandColor:  "#00579D",
			StoreType:   domain.StoreTypeDiscounter,
			Aliases:     []string{"aldi", "aldi stores"},
			MarketShare: 10.2,
		},
		{
			ID:          "morrisons",
			DisplayName: "Morrisons",
			BrandColor:  "#FFD700",
			StoreType:   domain.StoreTypeSupermarket,
			Aliases:     []string{"morrisons", "morrison", "wm morrison", "morrisons daily"},
			MarketShare: 8.6,
		},
		{
			ID:          "lidl",
			DisplayName: "Lidl",
			BrandColor:  "#0050AA",
			StoreType:   domain.StoreTypeDiscounter,
			Aliases:     []string{"lidl", "lidl gb"},
			MarketShare: 8.1,
		},
		{
			ID:          "coop",
			DisplayName: "Co-op",
			BrandColor:  "#00B1E7",
			StoreType:   domain.StoreTypeConvenience,
			Aliases:     []string{"coop", "co-op", "co op", "co-operative", "cooperative", "the co-operative food"},
			MarketShare: 5.4,
		},
		{
			ID:          "waitrose",
			DisplayName: "Waitrose",
			BrandColor:  "#5B8F22",
			StoreType:   domain.StoreTypePremium,
			Aliases:     []string{"waitrose", "waitrose & partners", "waitrose and partners", "little waitrose"},
			MarketShare: 4.4,
		},
		{
			ID:          "marks",
			DisplayName: "M&S Food",
			BrandColor:  "#004225",
			StoreType:   domain.StoreTypePremium,
			Aliases:     []string{"marks", "m&s", "m & s", "marks and spencer", "marks & spencer", "marks spencer", "m&s simply food", "m&s food", "m&s foodhall"},
			MarketShare: 3.6,
		},
		{
			ID:          "iceland",
			DisplayName: "Iceland",
			BrandColor:  "#EE3124",
			StoreType:   domain.StoreTypeFrozen,
			Aliases:     []string{"iceland", "iceland foods", "the food warehouse"},
			MarketShare: 2.3,
		},
		{
			ID:          "ocado",
			DisplayName: "Ocado",
			BrandColor:  "#5F259F",
			StoreType:   domain.StoreTypeSupermarket,
			Aliases:     []string{"ocado", "ocado retail"},
			MarketShare: 1.9,
		},
		{
			ID:          "farmfoods",
			DisplayName: "Farmfoods",
			BrandColor:  "#00703C",
			StoreType:   domain.StoreTypeFrozen,
			Aliases:     []string{"farmfoods", "farm foods"},
			MarketShare: 1.5,
		},
		{
			ID:          "costco",
			DisplayName: "Costco",
			BrandColor:  "#E31837",
			StoreType:   domain.StoreTypeWholesale,
			Aliases:     []string{"costco", "costco wholesale"},
			MarketShare: 1.3,
		},
		{
			ID:          "spar",
			DisplayName: "SPAR",
			BrandColor:  "#006633",
			StoreType:   domain.StoreTypeConvenience,
			Aliases:     []string{"spar"},
			MarketShare: 1.1,
		},
		{
			ID:          "londis",
			DisplayName: "Londis",
			BrandColor:  "#F58220",
			StoreType:   domain.StoreTypeConvenience,
			Aliases:     []string{"londis"},
			MarketShare: 0.6,
		},
		{
			ID:          "budgens",
			DisplayName: "Budgens",
			BrandColor:  "#6CB33F",
			StoreType:   domain.StoreTypeConvenience,
			Aliases:     []string{"budgens"},
			MarketShare: 0.4,
		},
		{
			ID:          "booths",
			DisplayName: "Booths",
			BrandColor:  "#1D3C34",
			StoreType:   domain.StoreTypePremium,
			Aliases:     []string{"booths", "eh booth"},
			MarketShare: 0.3,
		},
		{
			ID:          "wingyip",
			DisplayName: "Wing Yip",
			BrandColor:  "#C8102E",
			StoreType:   domain.StoreTypeSpecialty,
			Aliases:     []string{"wing yip", "wingyip"},
			MarketShare: 0.1,
			CuisineTags: []string{"chinese", "east-asian"},
		},
		{
			ID:          "tajstores",
			DisplayName: "Taj Stores",
			BrandColor:  "#9B2335",
			StoreType:   domain.StoreTypeSpecialty,
			Aliases:     []string{"taj", "taj stores"},
			MarketShare: 0.1,
			CuisineTags: []string{"south-asian", "halal"},
		},
	}
}
