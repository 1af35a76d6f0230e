package notes

import (
	"strings"
	"unicode/utf8"
)

// Mode selects which note field a search term is matched against.
type Mode int

const (
	// ModeDefault matches the title or the keywords.
	ModeDefault Mode = iota
	ModeTitle
	ModeContent
	ModeKeyword
	ModeSubject
)

func (m Mode) String() string {
	switch m {
	case ModeTitle:
		return "title"
	case ModeContent:
		return "content"
	case ModeKeyword:
		return "keyword"
	case ModeSubject:
		return "subject"
	default:
		return "default"
	}
}

// fieldModes maps field names, English and Chinese, to modes.
var fieldModes = map[string]Mode{
	"title":    ModeTitle,
	"标题":       ModeTitle,
	"content":  ModeContent,
	"内容":       ModeContent,
	"keyword":  ModeKeyword,
	"keywords": ModeKeyword,
	"关键词":      ModeKeyword,
	"subject":  ModeSubject,
	"主题":       ModeSubject,
}

// Term is one substring condition.
type Term struct {
	Mode Mode   `json:"mode"`
	Text string `json:"text"`
}

// Query is a conjunction of terms.
type Query struct {
	Terms []Term `json:"terms"`
}

// Empty reports whether the query has no terms and therefore matches every note.
func (q Query) Empty() bool { return len(q.Terms) == 0 }

// ParseQuery splits raw on ';', '；', ',' and '，' into terms. A segment of
// the form field:value (':' or '：') scopes value to that field; unknown
// fields and plain segments become default terms. Segments and values that
// are blank after trimming are dropped.
func ParseQuery(raw string) Query {
	segments := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ';', '；', ',', '，':
			return true
		}
		return false
	})

	var q Query
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		term := parseTerm(seg)
		if term.Text == "" {
			continue
		}
		q.Terms = append(q.Terms, term)
	}
	return q
}

func parseTerm(seg string) Term {
	field, value, ok := cutColon(seg)
	if !ok {
		return Term{Mode: ModeDefault, Text: seg}
	}
	mode, known := fieldModes[strings.ToLower(strings.TrimSpace(field))]
	if !known {
		mode = ModeDefault
	}
	return Term{Mode: mode, Text: strings.TrimSpace(value)}
}

func cutColon(s string) (before, after string, found bool) {
	if i := strings.IndexAny(s, ":："); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		return s[:i], s[i+size:], true
	}
	return s, "", false
}

// where builds the SQL condition and arguments for q. Column names come from
// a fixed set; only the term text is bound as a parameter.
func (q Query) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	for _, t := range q.Terms {
		pattern := likePattern(t.Text)
		switch t.Mode {
		case ModeTitle:
			conds = append(conds, `title LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		case ModeContent:
			conds = append(conds, `body LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		case ModeKeyword:
			conds = append(conds, `keywords LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		case ModeSubject:
			conds = append(conds, `subject LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		default:
			conds = append(conds, `(title LIKE ? ESCAPE '\' OR keywords LIKE ? ESCAPE '\')`)
			args = append(args, pattern, pattern)
		}
	}
	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}
