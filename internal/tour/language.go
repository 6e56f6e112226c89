package tour

import "strings"

// Language is one of the upstream per-language services.
type Language int

const (
	Korean Language = iota
	English
	Japanese
	ChineseSimplified
	ChineseTraditional
)

type languageEntry struct {
	lang    Language
	name    string
	segment string
	aliases []string
}

// languageTable is declaration-ordered; resolution returns the first match.
var languageTable = []languageEntry{
	{lang: Korean, name: "KOREAN", segment: "KorService2", aliases: []string{"kor", "korean", "한국어"}},
	{lang: English, name: "ENGLISH", segment: "EngService2", aliases: []string{"eng", "english", "영어"}},
	{lang: Japanese, name: "JAPANESE", segment: "JpnService2", aliases: []string{"jpn", "japanese", "일본어"}},
	{lang: ChineseSimplified, name: "CHINESE_SIMPLIFIED", segment: "ChsService2", aliases: []string{"zh-cn", "chs", "중국어 간체", "간체"}},
	{lang: ChineseTraditional, name: "CHINESE_TRADITIONAL", segment: "ChtService2", aliases: []string{"zh-tw", "cht", "중국어 번체", "번체"}},
}

// Languages returns every supported language in declaration order.
func Languages() []Language {
	out := make([]Language, 0, len(languageTable))
	for _, e := range languageTable {
		out = append(out, e.lang)
	}
	return out
}

func (l Language) entry() languageEntry {
	if l < Korean || int(l) >= len(languageTable) {
		return languageTable[Korean]
	}
	return languageTable[l]
}

// String returns the canonical name, e.g. "CHINESE_SIMPLIFIED".
func (l Language) String() string {
	return l.entry().name
}

// Segment returns the upstream path segment, e.g. "KorService2".
func (l Language) Segment() string {
	return l.entry().segment
}

// Aliases returns a copy of the alias set used during resolution.
func (l Language) Aliases() []string {
	aliases := l.entry().aliases
	out := make([]string, len(aliases))
	copy(out, aliases)
	return out
}

// ResolveLanguage normalizes a free-form language hint. Matching is case-insensitive against
// the canonical name, the service segment and the aliases; aliases also match with spaces
// removed ("중국어간체"). Blank or unknown input resolves to Korean.
func ResolveLanguage(raw string) Language {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Korean
	}
	compact := strings.ReplaceAll(normalized, " ", "")

	for _, e := range languageTable {
		if normalized == strings.ToLower(e.name) || normalized == strings.ToLower(e.segment) {
			return e.lang
		}
		for _, alias := range e.aliases {
			if normalized == alias || compact == strings.ReplaceAll(alias, " ", "") {
				return e.lang
			}
		}
	}
	return Korean
}
