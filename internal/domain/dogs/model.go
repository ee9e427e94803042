package dogs

import "time"

// Size clasifica el tamaño del perro.
// @Enum small, medium, large, extra_large
type Size string

const (
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeExtraLarge Size = "extra_large"
)

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	}
	return false
}

// CoatLength define el largo del pelaje.
// @Enum short, medium, long, wire, hairless
type CoatLength string

const (
	CoatShort    CoatLength = "short"
	CoatMedium   CoatLength = "medium"
	CoatLong     CoatLength = "long"
	CoatWire     CoatLength = "wire"
	CoatHairless CoatLength = "hairless"
)

func (c CoatLength) Valid() bool {
	switch c {
	case CoatShort, CoatMedium, CoatLong, CoatWire, CoatHairless:
		return true
	}
	return false
}

// Sex define el sexo del perro.
// @Enum male, female
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Dog es un perro adoptable del catálogo.
type Dog struct {
	ID string

	Name       string
	Breed      string // etiqueta libre, p.ej. "Golden Retriever"
	Size       Size
	AgeYears   float64
	WeightLbs  float64
	Color      string
	Sex        Sex
	CoatLength CoatLength

	Description string
	ImageURL    string

	IsRescue     bool
	GoodWithCats bool
	GoodWithKids bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultWeight devuelve un peso estimado (lbs) cuando no se conoce el real.
func DefaultWeight(s Size) float64 {
	switch s {
	case SizeSmall:
		return 15
	case SizeLarge:
		return 70
	case SizeExtraLarge:
		return 110
	default:
		return 40
	}
}
