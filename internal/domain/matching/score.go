package matching

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"tingrrr/internal/domain/dogs"
)

// NeutralScore es el puntaje cuando no hay perfil o ningún factor definido.
const NeutralScore = 50.0

// Pesos por factor. Suman 100.
const (
	sizeWeight   = 20.0
	breedWeight  = 15.0
	coatWeight   = 10.0
	ageWeight    = 15.0
	weightWeight = 15.0
	catsWeight   = 10.0
	kidsWeight   = 10.0
	rescueWeight = 5.0

	// Puntos que se pierden por unidad fuera del rango.
	ageDecay    = 3.0
	weightDecay = 0.3
)

// Scored es un candidato con su compatibilidad 0-100.
type Scored struct {
	Dog   dogs.Dog
	Score float64
}

// Score devuelve la compatibilidad de d con p en [0, 100], redondeada a un
// decimal. Solo suman al máximo posible los factores que p define; los rangos
// de edad y peso cuentan únicamente si tienen ambos extremos.
func Score(d dogs.Dog, p Profile) float64 {
	var achieved, possible float64

	if p.PreferredSize != nil {
		possible += sizeWeight
		if d.Size == *p.PreferredSize {
			achieved += sizeWeight
		}
	}
	if p.PreferredBreed != nil {
		possible += breedWeight
		if strings.EqualFold(d.Breed, *p.PreferredBreed) {
			achieved += breedWeight
		}
	}
	if p.PreferredCoatLength != nil {
		possible += coatWeight
		if d.CoatLength == *p.PreferredCoatLength {
			achieved += coatWeight
		}
	}
	if p.MinAge != nil && p.MaxAge != nil {
		possible += ageWeight
		achieved += rangeCredit(d.AgeYears, *p.MinAge, *p.MaxAge, ageWeight, ageDecay)
	}
	if p.MinWeight != nil && p.MaxWeight != nil {
		possible += weightWeight
		achieved += rangeCredit(d.WeightLbs, *p.MinWeight, *p.MaxWeight, weightWeight, weightDecay)
	}
	if p.PrefersGoodWithCats != nil {
		possible += catsWeight
		if d.GoodWithCats == *p.PrefersGoodWithCats {
			achieved += catsWeight
		}
	}
	if p.PrefersGoodWithKids != nil {
		possible += kidsWeight
		if d.GoodWithKids == *p.PrefersGoodWithKids {
			achieved += kidsWeight
		}
	}
	if p.PrefersRescue != nil {
		possible += rescueWeight
		if d.IsRescue == *p.PrefersRescue {
			achieved += rescueWeight
		}
	}

	if possible == 0 {
		return NeutralScore
	}
	return round1(achieved / possible * 100)
}

// Rank puntúa candidates contra p y devuelve los primeros limit ordenados por
// puntaje descendente; los empates conservan el orden de entrada.
// Sin perfil todos valen NeutralScore y se respeta el orden de entrada.
func Rank(candidates []dogs.Dog, p *Profile, limit int) []Scored {
	if limit <= 0 || len(candidates) == 0 {
		return []Scored{}
	}

	if p == nil {
		n := min(limit, len(candidates))
		out := make([]Scored, 0, n)
		for _, d := range candidates[:n] {
			out = append(out, Scored{Dog: d, Score: NeutralScore})
		}
		return out
	}

	out := make([]Scored, 0, len(candidates))
	for _, d := range candidates {
		out = append(out, Scored{Dog: d, Score: Score(d, *p)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func rangeCredit(v, lo, hi, weight, decay float64) float64 {
	if v >= lo && v <= hi {
		return weight
	}
	dist := math.Min(math.Abs(v-lo), math.Abs(v-hi))
	return math.Max(0, weight-dist*decay)
}

// round1 redondea a un decimal según el valor binario exacto de x; solo los
// empates exactos (p.ej. 92.25) van al dígito par.
func round1(x float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	return v
}
