package enums

import "fmt"

// OptionGroupType classifies a customization axis.
type OptionGroupType string

const (
	OptionGroupTypeSize   OptionGroupType = "SIZE"
	OptionGroupTypeColor  OptionGroupType = "COLOR"
	OptionGroupTypeCustom OptionGroupType = "CUSTOM"
)

var validOptionGroupTypes = []OptionGroupType{
	OptionGroupTypeSize,
	OptionGroupTypeColor,
	OptionGroupTypeCustom,
}

// String implements fmt.Stringer.
func (t OptionGroupType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known OptionGroupType.
func (t OptionGroupType) IsValid() bool {
	for _, candidate := range validOptionGroupTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseOptionGroupType converts raw input into an OptionGroupType.
func ParseOptionGroupType(value string) (OptionGroupType, error) {
	for _, candidate := range validOptionGroupTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid option group type %q", value)
}

// SelectionType defines how many items of a group a shopper may pick.
type SelectionType string

const (
	SelectionTypeSingle SelectionType = "single"
	SelectionTypeMulti  SelectionType = "multi"
)

var validSelectionTypes = []SelectionType{
	SelectionTypeSingle,
	SelectionTypeMulti,
}

// String implements fmt.Stringer.
func (s SelectionType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SelectionType.
func (s SelectionType) IsValid() bool {
	for _, candidate := range validSelectionTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSelectionType converts raw input into a SelectionType.
func ParseSelectionType(value string) (SelectionType, error) {
	for _, candidate := range validSelectionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid selection type %q", value)
}

// ItemPlacement marks whether an option item may be applied to half of a product.
// The zero value means the item is always placed whole.
type ItemPlacement string

const (
	ItemPlacementNone ItemPlacement = ""
	ItemPlacementHalf ItemPlacement = "HALF"
)

// IsHalf reports whether the item can be halved.
func (p ItemPlacement) IsHalf() bool {
	return p == ItemPlacementHalf
}

// IsValid reports whether the marker is absent or HALF.
func (p ItemPlacement) IsValid() bool {
	return p == ItemPlacementNone || p == ItemPlacementHalf
}

// Placement is where an addon lands on the product.
type Placement string

const (
	PlacementWhole Placement = "WHOLE"
	PlacementLeft  Placement = "LEFT"
	PlacementRight Placement = "RIGHT"
)

var validPlacements = []Placement{
	PlacementWhole,
	PlacementLeft,
	PlacementRight,
}

// String implements fmt.Stringer.
func (p Placement) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Placement.
func (p Placement) IsValid() bool {
	for _, candidate := range validPlacements {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlacement converts raw input into a Placement.
func ParsePlacement(value string) (Placement, error) {
	for _, candidate := range validPlacements {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid placement %q", value)
}

// ProductType decides which selection path a product uses.
type ProductType string

const (
	ProductTypeStandard ProductType = "STANDARD"
	ProductTypePizza    ProductType = "PIZZA"
)

var validProductTypes = []ProductType{
	ProductTypeStandard,
	ProductTypePizza,
}

// String implements fmt.Stringer.
func (t ProductType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ProductType.
func (t ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}
