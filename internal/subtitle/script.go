package subtitle

import "unicode"

// Script identifies the writing system a text segment needs a glyph source for.
type Script string

// Known scripts, in classification priority order.
const (
	ScriptDevanagari Script = "devanagari"
	ScriptCJK        Script = "cjk"
	ScriptTamil      Script = "tamil"
	ScriptTelugu     Script = "telugu"
	ScriptLatin      Script = "latin"
)

// classifiers is the fixed priority order: the first script with any
// matching codepoint in the text wins.
var classifiers = []struct {
	script Script
	tables []*unicode.RangeTable
}{
	{ScriptDevanagari, []*unicode.RangeTable{unicode.Devanagari}},
	{ScriptCJK, []*unicode.RangeTable{unicode.Han, unicode.Hiragana, unicode.Katakana}},
	{ScriptTamil, []*unicode.RangeTable{unicode.Tamil}},
	{ScriptTelugu, []*unicode.RangeTable{unicode.Telugu}},
}

// Classify inspects the text's codepoints against known Unicode blocks in
// priority order and returns the first matching script, defaulting to Latin.
// Classification is deterministic and total.
func Classify(text string) Script {
	for _, c := range classifiers {
		for _, r := range text {
			if unicode.In(r, c.tables...) {
				return c.script
			}
		}
	}
	return ScriptLatin
}
