package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// namedEntities is the fixed decoding table: the basic XML set plus the
// accented characters that show up in Portuguese supplier copy. Replacement
// runs in slice order; &amp; goes first so double-escaped input
// ("&amp;atilde;") resolves through the rest of the table in the same pass.
var namedEntities = []struct {
	entity string
	text   string
}{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&apos;", "'"},
	{"&nbsp;", " "},
	{"&ordm;", "º"},
	{"&ordf;", "ª"},
	{"&deg;", "°"},
	{"&middot;", "·"},
	{"&aacute;", "á"},
	{"&eacute;", "é"},
	{"&iacute;", "í"},
	{"&oacute;", "ó"},
	{"&uacute;", "ú"},
	{"&acirc;", "â"},
	{"&ecirc;", "ê"},
	{"&ocirc;", "ô"},
	{"&atilde;", "ã"},
	{"&otilde;", "õ"},
	{"&agrave;", "à"},
	{"&ccedil;", "ç"},
	{"&Aacute;", "Á"},
	{"&Eacute;", "É"},
	{"&Iacute;", "Í"},
	{"&Oacute;", "Ó"},
	{"&Uacute;", "Ú"},
	{"&Atilde;", "Ã"},
	{"&Otilde;", "Õ"},
	{"&Ccedil;", "Ç"},
}

var (
	decimalEntityRe = regexp.MustCompile(`&#(\d{1,7});`)
	hexEntityRe     = regexp.MustCompile(`&#[xX]([0-9a-fA-F]{1,6});`)
)

// decodeEntities resolves the fixed named table plus numeric references.
// Anything outside the table is left untouched.
func decodeEntities(text string) string {
	for _, e := range namedEntities {
		text = strings.ReplaceAll(text, e.entity, e.text)
	}

	text = decimalEntityRe.ReplaceAllStringFunc(text, func(match string) string {
		code, err := strconv.ParseInt(match[2:len(match)-1], 10, 32)
		if err != nil || code <= 0 {
			return match
		}
		return string(rune(code))
	})

	text = hexEntityRe.ReplaceAllStringFunc(text, func(match string) string {
		code, err := strconv.ParseInt(match[3:len(match)-1], 16, 32)
		if err != nil || code <= 0 {
			return match
		}
		return string(rune(code))
	})

	return text
}
