// Package text turns free text into ranking terms.
package text

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize normalizes text and splits it into terms.
//
// Text is NFKC-normalized (full-width digits and letters fold to ASCII) and
// lowercased, then split into runs of letters and digits. Each run is further
// split where it switches between CJK and other scripts. Non-CJK segments are
// emitted whole; CJK segments, which carry no word boundaries, are emitted as
// overlapping character bigrams (a lone CJK character is emitted as is).
func Tokenize(s string) []string {
	return tokenize(s, Stopwords{})
}

// Terms tokenizes s and counts its terms, skipping stopwords. CJK segments
// are cut wherever a CJK stopword occurs before bigramming, so particles
// never end up inside a bigram ("水風呂は冷たい" yields 風呂 and 冷た but no 呂は).
func Terms(s string, stop Stopwords) map[string]int {
	return TermCounts(tokenize(s, stop), stop)
}

func tokenize(s string, stop Stopwords) []string {
	if s == "" {
		return nil
	}
	s = strings.ToLower(norm.NFKC.String(s))

	runs := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != 'ー'
	})

	var tokens []string
	for _, run := range runs {
		for _, seg := range splitScripts([]rune(run)) {
			if isCJK(seg[0]) {
				for _, piece := range stop.cut(seg) {
					tokens = appendBigrams(tokens, piece)
				}
			} else {
				tokens = append(tokens, string(seg))
			}
		}
	}
	return tokens
}

// splitScripts cuts a rune run at every CJK / non-CJK boundary.
func splitScripts(run []rune) [][]rune {
	var segs [][]rune
	start := 0
	for i := 1; i < len(run); i++ {
		if isCJK(run[i]) != isCJK(run[i-1]) {
			segs = append(segs, run[start:i])
			start = i
		}
	}
	if len(run) > 0 {
		segs = append(segs, run[start:])
	}
	return segs
}

func appendBigrams(tokens []string, seg []rune) []string {
	if len(seg) == 1 {
		return append(tokens, string(seg))
	}
	for i := 0; i+1 < len(seg); i++ {
		tokens = append(tokens, string(seg[i:i+2]))
	}
	return tokens
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		r == 'ー' || r == '々'
}

// Stopwords is a normalized stopword set.
type Stopwords struct {
	set map[string]struct{}
	cjk [][]rune // all-CJK stopwords, longest first
}

// StopSet builds a stopword lookup. Stopwords go through the same
// normalization as text so "です" and its full-width variants match alike.
func StopSet(words []string) Stopwords {
	sw := Stopwords{set: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(norm.NFKC.String(strings.TrimSpace(w)))
		if w == "" {
			continue
		}
		if _, dup := sw.set[w]; dup {
			continue
		}
		sw.set[w] = struct{}{}
		if r := []rune(w); allCJK(r) {
			sw.cjk = append(sw.cjk, r)
		}
	}
	sort.SliceStable(sw.cjk, func(i, j int) bool { return len(sw.cjk[i]) > len(sw.cjk[j]) })
	return sw
}

// Len returns the number of distinct stopwords.
func (sw Stopwords) Len() int { return len(sw.set) }

// Contains reports whether term is a stopword.
func (sw Stopwords) Contains(term string) bool {
	_, ok := sw.set[term]
	return ok
}

// cut removes stopword occurrences from a CJK segment and returns the
// pieces left between them. Longer stopwords win at the same position.
func (sw Stopwords) cut(seg []rune) [][]rune {
	if len(sw.cjk) == 0 {
		return [][]rune{seg}
	}
	var pieces [][]rune
	start := 0
	for i := 0; i < len(seg); {
		n := sw.matchAt(seg, i)
		if n == 0 {
			i++
			continue
		}
		if i > start {
			pieces = append(pieces, seg[start:i])
		}
		i += n
		start = i
	}
	if start < len(seg) {
		pieces = append(pieces, seg[start:])
	}
	return pieces
}

func (sw Stopwords) matchAt(seg []rune, i int) int {
	for _, w := range sw.cjk {
		if len(seg)-i < len(w) {
			continue
		}
		if string(seg[i:i+len(w)]) == string(w) {
			return len(w)
		}
	}
	return 0
}

func allCJK(r []rune) bool {
	for _, c := range r {
		if !isCJK(c) {
			return false
		}
	}
	return len(r) > 0
}

// TermCounts counts occurrences of each term, skipping stopwords.
func TermCounts(tokens []string, stop Stopwords) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		if stop.Contains(t) {
			continue
		}
		counts[t]++
	}
	return counts
}
