package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nonWord = regexp.MustCompile(`\W`)

// GoName turns a header label such as "unit price (EUR)" into an exported Go
// identifier ("UnitPriceEUR"). Labels starting with a digit get an "F"
// prefix; labels without any word character yield "".
func GoName(label string) string {
	caser := cases.Title(language.English, cases.NoLower)
	name := nonWord.ReplaceAllString(caser.String(strings.TrimSpace(label)), "")
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "F" + name
	}
	if name[0] == '_' {
		name = "X" + name
	}
	return name
}
