package style

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// DataStyles are per document data styles applied to typed cell values when
// no explicit data style is given.
type DataStyles struct {
	Float      *NumberStyle
	Percentage *NumberStyle
	Currency   *NumberStyle
	Date       *DateStyle
	Time       *TimeStyle
	Boolean    *BooleanStyle
}

// NewDataStyles builds default data styles for locale. Empty currency symbol
// is replaced by ISO code of the locale currency.
func NewDataStyles(locale language.Tag, currencySymbol string) *DataStyles {
	if currencySymbol == "" {
		currencySymbol = LocaleCurrency(locale)
	}
	return &DataStyles{
		Float:      NewNumberStyle("float-data", NumberFloat, NumberFormat{DecimalPlaces: 2, Grouping: true, Locale: locale}),
		Percentage: NewNumberStyle("percentage-data", NumberPercentage, NumberFormat{DecimalPlaces: 2, Locale: locale}),
		Currency:   NewNumberStyle("currency-data", NumberCurrency, NumberFormat{DecimalPlaces: 2, Grouping: true, CurrencySymbol: currencySymbol, Locale: locale}),
		Date:       NewDateStyle("date-data", locale),
		Time:       NewTimeStyle("time-data", locale, 0),
		Boolean:    NewBooleanStyle("boolean-data", locale),
	}
}

// LocaleCurrency returns ISO 4217 code of currency used in locale region.
func LocaleCurrency(locale language.Tag) string {
	if locale == language.Und {
		return ""
	}
	unit, conf := currency.FromTag(locale)
	if conf == language.No {
		return ""
	}
	return unit.String()
}

// All returns every default data style.
func (d *DataStyles) All() []DataStyle {
	return []DataStyle{d.Float, d.Percentage, d.Currency, d.Date, d.Time, d.Boolean}
}
