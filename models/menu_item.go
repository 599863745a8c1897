package models

import "gorm.io/gorm"

const (
	SpiceNone     = "None"
	SpiceMild     = "Mild"
	SpiceMedium   = "Medium"
	SpiceHot      = "Hot"
	SpiceExtraHot = "Extra Hot"
)

// MenuCategories is the closed set of menu sections shown to customers.
var MenuCategories = []string{
	"Starters", "Rice & Noodles", "Curries", "Grills", "Desserts", "Beverages", "Specials",
}

func ValidMenuCategory(c string) bool {
	for _, m := range MenuCategories {
		if m == c {
			return true
		}
	}
	return false
}

func ValidSpiceLevel(s string) bool {
	switch s {
	case SpiceNone, SpiceMild, SpiceMedium, SpiceHot, SpiceExtraHot:
		return true
	}
	return false
}

type MenuItem struct {
	gorm.Model

	Name        string  `json:"name" gorm:"size:255"`
	Category    string  `json:"category" gorm:"size:50;index"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty" gorm:"size:255"`

	// No column default on IsAvailable: GORM drops zero-valued fields that
	// carry one, which would turn an explicit false into true. The API
	// default lives in the create handler.
	IsAvailable  bool   `json:"isAvailable"`
	IsVegetarian bool   `json:"isVegetarian" gorm:"default:false"`
	SpiceLevel   string `json:"spiceLevel" gorm:"size:20;default:None"`
}
