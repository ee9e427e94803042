package azure

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tingrrr/internal/domain/dogs"
)

type breedTraits struct {
	name string
	size dogs.Size
	coat dogs.CoatLength
}

// knownBreeds se recorre en orden: las razas compuestas van antes que las
// que contienen ("french bulldog" antes que "bulldog").
var knownBreeds = []breedTraits{
	{"golden retriever", dogs.SizeLarge, dogs.CoatLong},
	{"labrador retriever", dogs.SizeLarge, dogs.CoatShort},
	{"german shepherd", dogs.SizeLarge, dogs.CoatMedium},
	{"french bulldog", dogs.SizeSmall, dogs.CoatShort},
	{"beagle", dogs.SizeMedium, dogs.CoatShort},
	{"poodle", dogs.SizeMedium, dogs.CoatLong},
	{"rottweiler", dogs.SizeExtraLarge, dogs.CoatShort},
	{"australian shepherd", dogs.SizeMedium, dogs.CoatLong},
	{"boxer", dogs.SizeLarge, dogs.CoatShort},
	{"yorkshire terrier", dogs.SizeSmall, dogs.CoatLong},
	{"siberian husky", dogs.SizeLarge, dogs.CoatLong},
	{"dachshund", dogs.SizeSmall, dogs.CoatShort},
	{"bernese mountain dog", dogs.SizeExtraLarge, dogs.CoatLong},
	{"shih tzu", dogs.SizeSmall, dogs.CoatLong},
	{"great dane", dogs.SizeExtraLarge, dogs.CoatShort},
	{"pit bull", dogs.SizeMedium, dogs.CoatShort},
	{"corgi", dogs.SizeSmall, dogs.CoatMedium},
	{"doberman", dogs.SizeLarge, dogs.CoatShort},
	{"chihuahua", dogs.SizeSmall, dogs.CoatShort},
	{"border collie", dogs.SizeMedium, dogs.CoatMedium},
	{"bulldog", dogs.SizeMedium, dogs.CoatShort},
	{"cocker spaniel", dogs.SizeMedium, dogs.CoatMedium},
	{"maltese", dogs.SizeSmall, dogs.CoatLong},
	{"pomeranian", dogs.SizeSmall, dogs.CoatLong},
	{"cavalier king charles spaniel", dogs.SizeSmall, dogs.CoatMedium},
}

var colorKeywords = []string{
	"black", "white", "brown", "golden", "tan", "red", "gray", "grey",
	"cream", "brindle", "merle", "spotted", "fawn", "chocolate", "blue", "tricolor",
}

// extractBreed busca la primera raza conocida en tags, objetos y caption.
func extractBreed(tags, objects []string, caption string) (breedTraits, bool) {
	combined := strings.ToLower(strings.Join(append(append([]string{}, tags...), objects...), " ")) +
		" " + strings.ToLower(caption)
	for _, b := range knownBreeds {
		if strings.Contains(combined, b.name) {
			return b, true
		}
	}
	return breedTraits{}, false
}

func extractColor(tags []string, caption string) (string, bool) {
	combined := strings.ToLower(strings.Join(tags, " ")) + " " + strings.ToLower(caption)
	for _, c := range colorKeywords {
		if strings.Contains(combined, c) {
			return titleWords(c), true
		}
	}
	return "", false
}

// titleWords pone en mayúscula la primera letra de cada palabra.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
