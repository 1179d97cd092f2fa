package translate

import "strings"

// langHeaderToDeepL maps Unity Localization column headers to DeepL target
// language codes. English is the source language and has no target code.
var langHeaderToDeepL = map[string]string{
	"Chinese (Simplified)(zh)":       "ZH",
	"Chinese (Traditional)(zh-Hant)": "ZH-HANT",
	"French(fr)":                     "FR",
	"German(de)":                     "DE",
	"Japanese(ja)":                   "JA",
	"Korean(ko)":                     "KO",
	"Polish(pl)":                     "PL",
	"Portuguese(pt)":                 "PT-PT",
	"Russian(ru)":                    "RU",
	"Spanish(es)":                    "ES",
	"Turkish(tr)":                    "TR",
}

// shortCodeToDeepL maps bare language codes to DeepL codes where the two
// differ. DeepL rejects regionless "PT" as a target, so the exporter's
// European Portuguese is kept.
var shortCodeToDeepL = map[string]string{
	"zh-hant": "ZH-HANT",
	"pt":      "PT-PT",
}

// DefaultSourceLang is the language code the exporter uses for the source
// text column.
const DefaultSourceLang = "en"

// DeepLCode converts a language code or Unity column header to the code
// DeepL expects. Plain codes are upper-cased ("de" -> "DE"); known Unity
// headers use the exporter's mapping ("Portuguese(pt)" -> "PT-PT").
func DeepLCode(lang string) string {
	if code, ok := langHeaderToDeepL[lang]; ok {
		return code
	}
	lang = strings.TrimSpace(lang)
	if code, ok := shortCodeToDeepL[strings.ToLower(lang)]; ok {
		return code
	}
	return strings.ToUpper(lang)
}

// KnownTargetHeaders returns the Unity column headers with a DeepL mapping,
// sorted the way they appear in the exporter. Used by the GUI to offer
// target language choices.
func KnownTargetHeaders() []string {
	return []string{
		"Chinese (Simplified)(zh)",
		"Chinese (Traditional)(zh-Hant)",
		"French(fr)",
		"German(de)",
		"Japanese(ja)",
		"Korean(ko)",
		"Polish(pl)",
		"Portuguese(pt)",
		"Russian(ru)",
		"Spanish(es)",
		"Turkish(tr)",
	}
}
