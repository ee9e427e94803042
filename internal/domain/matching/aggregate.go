package matching

import "tingrrr/internal/domain/dogs"

// Recompute arma el perfil completo de userID desde cero a partir de liked.
// Con liked vacío devuelve un perfil sin campos definidos.
//
// Categóricos: moda; ante empate gana el valor que aparece primero en liked.
// La raza se compara y guarda tal cual (sensible a mayúsculas).
// Rangos: mínimo y máximo literales.
// Booleanos: true solo con mayoría estricta (un 50/50 da false).
func Recompute(userID string, liked []dogs.Dog) Profile {
	p := Profile{UserID: userID}
	if len(liked) == 0 {
		return p
	}

	p.PreferredSize = ptr(mode(liked, func(d dogs.Dog) dogs.Size { return d.Size }))
	p.PreferredBreed = ptr(mode(liked, func(d dogs.Dog) string { return d.Breed }))
	p.PreferredCoatLength = ptr(mode(liked, func(d dogs.Dog) dogs.CoatLength { return d.CoatLength }))

	minAge, maxAge := bounds(liked, func(d dogs.Dog) float64 { return d.AgeYears })
	p.MinAge, p.MaxAge = &minAge, &maxAge

	minW, maxW := bounds(liked, func(d dogs.Dog) float64 { return d.WeightLbs })
	p.MinWeight, p.MaxWeight = &minW, &maxW

	p.PrefersGoodWithCats = ptr(majority(liked, func(d dogs.Dog) bool { return d.GoodWithCats }))
	p.PrefersGoodWithKids = ptr(majority(liked, func(d dogs.Dog) bool { return d.GoodWithKids }))
	p.PrefersRescue = ptr(majority(liked, func(d dogs.Dog) bool { return d.IsRescue }))

	return p
}

// mode asume len(items) > 0.
func mode[T comparable](items []dogs.Dog, key func(dogs.Dog) T) T {
	counts := make(map[T]int, len(items))
	order := make([]T, 0, len(items))
	for _, d := range items {
		k := key(d)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	best := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best
}

func bounds(items []dogs.Dog, key func(dogs.Dog) float64) (lo, hi float64) {
	lo, hi = key(items[0]), key(items[0])
	for _, d := range items[1:] {
		v := key(d)
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func majority(items []dogs.Dog, key func(dogs.Dog) bool) bool {
	yes := 0
	for _, d := range items {
		if key(d) {
			yes++
		}
	}
	return yes*2 > len(items)
}
