package ocr

import (
	"strings"

	"golang.org/x/text/language"
)

// easyOCRToTesseract covers EasyOCR language codes that are not BCP 47 tags
// or whose Tesseract traineddata name differs from the ISO 639-3 code.
var easyOCRToTesseract = map[string]string{
	"ch_sim":      "chi_sim",
	"ch_tra":      "chi_tra",
	"zh":          "chi_sim",
	"rs_latin":    "srp_latn",
	"rs_cyrillic": "srp",
}

// TesseractLanguage maps an EasyOCR language code ("ja", "en", "ch_sim") to
// the Tesseract traineddata name ("jpn", "eng", "chi_sim"). Codes that are
// already Tesseract names, or cannot be mapped, are returned unchanged.
func TesseractLanguage(code string) string {
	if tc, ok := easyOCRToTesseract[strings.ToLower(code)]; ok {
		return tc
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	base, conf := tag.Base()
	if conf == language.No {
		return code
	}
	if iso3 := base.ISO3(); iso3 != "" {
		return iso3
	}
	return code
}
