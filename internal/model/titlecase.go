package model

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
// "MAIN ST" becomes "Main St". Applying it twice gives the same result as once.
func TitleCase(s string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Title(language.English).String(s)
}
