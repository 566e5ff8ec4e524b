package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/termopark/finboard/pkg/models"
)

// ErrUnknownUnit marks a business-unit label with no synonym table entry.
var ErrUnknownUnit = errors.New("unknown business unit")

// unitSynonyms maps the labels that actually appear in the sheets, including
// the Russian names the bookkeepers use, onto canonical units.
var unitSynonyms = map[string]models.BusinessUnit{
	"отель и бани": models.UnitHotel,
	"отель":        models.UnitHotel,
	"бани":         models.UnitHotel,
	"hotel":        models.UnitHotel,
	"ресторан":     models.UnitRestaurant,
	"restaurant":   models.UnitRestaurant,
	"спа-центр":    models.UnitSpa,
	"спа":          models.UnitSpa,
	"spa":          models.UnitSpa,
	"бассейн":      models.UnitPool,
	"pool":         models.UnitPool,
	"бар":          models.UnitBar,
	"bar":          models.UnitBar,
}

// NormalizeUnit maps a free-text unit label to its canonical identifier.
// Unrecognized labels fail; the caller drops the row rather than guessing
// which unit the money belongs to.
func NormalizeUnit(label string) (models.BusinessUnit, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if unit, ok := unitSynonyms[key]; ok {
		return unit, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, label)
}
