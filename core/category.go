package core

import "fmt"

// Category classifies a vocabulary entry or search term.
type Category int

const (
	// CategoryKeyword marks a plain word with no categorical meaning.
	CategoryKeyword Category = iota
	CategoryGenre
	CategoryTheme
	CategoryEra
	CategoryQuality
	CategoryTone
)

var categoryNames = [...]string{
	CategoryKeyword: "keyword",
	CategoryGenre:   "genre",
	CategoryTheme:   "theme",
	CategoryEra:     "era",
	CategoryQuality: "quality",
	CategoryTone:    "tone",
}

// Accepted spellings, keyed by normalized form.
var categoryAliases = map[string]Category{
	"keyword":  CategoryKeyword,
	"mot cle":  CategoryKeyword,
	"motcle":   CategoryKeyword,
	"genre":    CategoryGenre,
	"theme":    CategoryTheme,
	"era":      CategoryEra,
	"epoque":   CategoryEra,
	"periode":  CategoryEra,
	"period":   CategoryEra,
	"quality":  CategoryQuality,
	"qualite":  CategoryQuality,
	"tone":     CategoryTone,
	"ton":      CategoryTone,
	"mood":     CategoryTone,
	"humeur":   CategoryTone,
	"ambiance": CategoryTone,
}

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{CategoryKeyword, CategoryGenre, CategoryTheme, CategoryEra, CategoryQuality, CategoryTone}
}

func (c Category) String() string {
	if c.Valid() {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Valid reports whether c is a declared category.
func (c Category) Valid() bool {
	return c >= CategoryKeyword && c <= CategoryTone
}

// ParseCategory resolves a category name. English names and their French
// equivalents are accepted, case and accents ignored.
func ParseCategory(name string) (Category, error) {
	if c, ok := categoryAliases[NormalizeKey(name)]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Field is the film attribute a match signal was found on.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldGenre
	FieldTheme
	FieldEra
	FieldTone
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldDescription:
		return "description"
	case FieldGenre:
		return "genre"
	case FieldTheme:
		return "theme"
	case FieldEra:
		return "era"
	case FieldTone:
		return "tone"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}
