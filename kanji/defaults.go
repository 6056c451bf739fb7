package kanji

// defaultReadings is the built-in reading table used when no analyzer can
// segment the text. It covers characters common in economic news headlines.
var defaultReadings = map[rune]string{
	'日': "にち",
	'本': "ほん",
	'人': "じん",
	'大': "だい",
	'小': "しょう",
	'山': "やま",
	'川': "かわ",
	'田': "た",
	'木': "き",
	'水': "みず",
	'火': "ひ",
	'金': "きん",
	'土': "ど",
	'子': "こ",
	'女': "おんな",
	'学': "がく",
	'校': "こう",
	'先': "せん",
	'生': "せい",
	'月': "つき",
	'年': "ねん",
	'週': "しゅう",
	'末': "まつ",
	'市': "し",
	'場': "ば",
	'株': "かぶ",
	'価': "か",
	'指': "ゆび",
	'数': "かず",
	'下': "した",
	'落': "おち",
	'主': "しゅ",
	'要': "よう",
	'因': "いん",
	'関': "かん",
	'税': "ぜい",
	'明': "めい",
	'値': "ち",
	'平': "へい",
	'均': "きん",
	'近': "ちか",
	'時': "じ",
	'三': "さん",
	'千': "せん",
	'円': "えん",
	'朝': "あさ",
	'刊': "かん",
	'新': "しん",
	'聞': "ぶん",
	'販': "はん",
	'売': "ばい",
	'所': "しょ",
}

// DefaultReading returns the built-in reading for r.
func DefaultReading(r rune) (string, bool) {
	reading, ok := defaultReadings[r]
	return reading, ok
}
