package shaping

import "strings"

// forms holds the contextual presentation forms of a joining letter.
// Right-joining letters have no initial or medial form.
type forms struct {
	isolated, final, initial, medial rune
}

func (f forms) joinsPrev() bool { return f.final != 0 }
func (f forms) joinsNext() bool { return f.initial != 0 }

const lam = '\u0644'

var letterForms = map[rune]forms{
	'\u0621': {'\uFE80', 0, 0, 0},                      // letter hamza
	'\u0622': {'\uFE81', '\uFE82', 0, 0},               // letter alef with madda above
	'\u0623': {'\uFE83', '\uFE84', 0, 0},               // letter alef with hamza above
	'\u0624': {'\uFE85', '\uFE86', 0, 0},               // letter waw with hamza above
	'\u0625': {'\uFE87', '\uFE88', 0, 0},               // letter alef with hamza below
	'\u0626': {'\uFE89', '\uFE8A', '\uFE8B', '\uFE8C'}, // letter yeh with hamza above
	'\u0627': {'\uFE8D', '\uFE8E', 0, 0},               // letter alef
	'\u0628': {'\uFE8F', '\uFE90', '\uFE91', '\uFE92'}, // letter beh
	'\u0629': {'\uFE93', '\uFE94', 0, 0},               // letter teh marbuta
	'\u062A': {'\uFE95', '\uFE96', '\uFE97', '\uFE98'}, // letter teh
	'\u062B': {'\uFE99', '\uFE9A', '\uFE9B', '\uFE9C'}, // letter theh
	'\u062C': {'\uFE9D', '\uFE9E', '\uFE9F', '\uFEA0'}, // letter jeem
	'\u062D': {'\uFEA1', '\uFEA2', '\uFEA3', '\uFEA4'}, // letter hah
	'\u062E': {'\uFEA5', '\uFEA6', '\uFEA7', '\uFEA8'}, // letter khah
	'\u062F': {'\uFEA9', '\uFEAA', 0, 0},               // letter dal
	'\u0630': {'\uFEAB', '\uFEAC', 0, 0},               // letter thal
	'\u0631': {'\uFEAD', '\uFEAE', 0, 0},               // letter reh
	'\u0632': {'\uFEAF', '\uFEB0', 0, 0},               // letter zain
	'\u0633': {'\uFEB1', '\uFEB2', '\uFEB3', '\uFEB4'}, // letter seen
	'\u0634': {'\uFEB5', '\uFEB6', '\uFEB7', '\uFEB8'}, // letter sheen
	'\u0635': {'\uFEB9', '\uFEBA', '\uFEBB', '\uFEBC'}, // letter sad
	'\u0636': {'\uFEBD', '\uFEBE', '\uFEBF', '\uFEC0'}, // letter dad
	'\u0637': {'\uFEC1', '\uFEC2', '\uFEC3', '\uFEC4'}, // letter tah
	'\u0638': {'\uFEC5', '\uFEC6', '\uFEC7', '\uFEC8'}, // letter zah
	'\u0639': {'\uFEC9', '\uFECA', '\uFECB', '\uFECC'}, // letter ain
	'\u063A': {'\uFECD', '\uFECE', '\uFECF', '\uFED0'}, // letter ghain
	'\u0640': {'\u0640', '\u0640', '\u0640', '\u0640'}, // tatweel
	'\u0641': {'\uFED1', '\uFED2', '\uFED3', '\uFED4'}, // letter feh
	'\u0642': {'\uFED5', '\uFED6', '\uFED7', '\uFED8'}, // letter qaf
	'\u0643': {'\uFED9', '\uFEDA', '\uFEDB', '\uFEDC'}, // letter kaf
	'\u0644': {'\uFEDD', '\uFEDE', '\uFEDF', '\uFEE0'}, // letter lam
	'\u0645': {'\uFEE1', '\uFEE2', '\uFEE3', '\uFEE4'}, // letter meem
	'\u0646': {'\uFEE5', '\uFEE6', '\uFEE7', '\uFEE8'}, // letter noon
	'\u0647': {'\uFEE9', '\uFEEA', '\uFEEB', '\uFEEC'}, // letter heh
	'\u0648': {'\uFEED', '\uFEEE', 0, 0},               // letter waw
	'\u0649': {'\uFEEF', '\uFEF0', '\uFBE8', '\uFBE9'}, // letter alef maksura
	'\u064A': {'\uFEF1', '\uFEF2', '\uFEF3', '\uFEF4'}, // letter yeh
	'\u0671': {'\uFB50', '\uFB51', 0, 0},               // letter alef wasla
	'\u0679': {'\uFB66', '\uFB67', '\uFB68', '\uFB69'}, // letter tteh
	'\u067E': {'\uFB56', '\uFB57', '\uFB58', '\uFB59'}, // letter peh
	'\u0686': {'\uFB7A', '\uFB7B', '\uFB7C', '\uFB7D'}, // letter tcheh
	'\u0688': {'\uFB88', '\uFB89', 0, 0},               // letter ddal
	'\u0691': {'\uFB8C', '\uFB8D', 0, 0},               // letter rreh
	'\u0698': {'\uFB8A', '\uFB8B', 0, 0},               // letter jeh
	'\u06A9': {'\uFB8E', '\uFB8F', '\uFB90', '\uFB91'}, // letter keheh
	'\u06AF': {'\uFB92', '\uFB93', '\uFB94', '\uFB95'}, // letter gaf
	'\u06BA': {'\uFB9E', '\uFB9F', 0, 0},               // letter noon ghunna
	'\u06BE': {'\uFBAA', '\uFBAB', '\uFBAC', '\uFBAD'}, // letter heh doachashmee
	'\u06C1': {'\uFBA6', '\uFBA7', '\uFBA8', '\uFBA9'}, // letter heh goal
	'\u06CC': {'\uFBFC', '\uFBFD', '\uFBFE', '\uFBFF'}, // letter farsi yeh
	'\u06D2': {'\uFBAE', '\uFBAF', 0, 0},               // letter yeh barree
}

// lamAlefForms maps the alef following a lam to the ligature forms.
// The ligature joins only to the preceding letter.
var lamAlefForms = map[rune]forms{
	'\u0622': {'\uFEF5', '\uFEF6', 0, 0},
	'\u0623': {'\uFEF7', '\uFEF8', 0, 0},
	'\u0625': {'\uFEF9', '\uFEFA', 0, 0},
	'\u0627': {'\uFEFB', '\uFEFC', 0, 0},
}

// isHaraka reports whether r is a combining mark that is transparent to joining.
func isHaraka(r rune) bool {
	switch {
	case r >= 0x0610 && r <= 0x061A,
		r >= 0x064B && r <= 0x065F,
		r == 0x0670,
		r >= 0x06D6 && r <= 0x06DC,
		r >= 0x06DF && r <= 0x06E4,
		r == 0x06E7, r == 0x06E8,
		r >= 0x06EA && r <= 0x06ED,
		r >= 0x08D3 && r <= 0x08E1,
		r >= 0x08E3 && r <= 0x08FF:
		return true
	}
	return false
}

// unit is one position of the reshaping buffer: a letter, a lam-alef
// ligature, a transparent mark or any other rune.
type unit struct {
	r           rune
	forms       forms
	joining     bool
	transparent bool
}

// reshape replaces Arabic letters with the presentation form matching their
// joining context. Input and output are in logical order.
func reshape(s string, keepHarakat bool) string {
	runes := []rune(s)
	units := make([]unit, 0, len(runes))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if isHaraka(r) {
			if keepHarakat {
				units = append(units, unit{r: r, transparent: true})
			}
			continue
		}

		if r == lam {
			j := i + 1
			for j < len(runes) && isHaraka(runes[j]) {
				j++
			}
			if j < len(runes) {
				if lig, ok := lamAlefForms[runes[j]]; ok {
					units = append(units, unit{r: lig.isolated, forms: lig, joining: true})
					if keepHarakat {
						for _, m := range runes[i+1 : j] {
							units = append(units, unit{r: m, transparent: true})
						}
					}
					i = j
					continue
				}
			}
		}

		f, ok := letterForms[r]
		units = append(units, unit{r: r, forms: f, joining: ok})
	}

	var b strings.Builder
	b.Grow(len(s))
	for i, u := range units {
		if !u.joining {
			b.WriteRune(u.r)
			continue
		}
		prev := neighbor(units, i, -1)
		next := neighbor(units, i, 1)
		joinPrev := u.forms.joinsPrev() && prev != nil && prev.forms.joinsNext()
		joinNext := u.forms.joinsNext() && next != nil && next.forms.joinsPrev()

		switch {
		case joinPrev && joinNext:
			b.WriteRune(u.forms.medial)
		case joinPrev:
			b.WriteRune(u.forms.final)
		case joinNext:
			b.WriteRune(u.forms.initial)
		default:
			b.WriteRune(u.forms.isolated)
		}
	}
	return b.String()
}

// neighbor returns the closest non-transparent joining unit in direction
// step, or nil when a non-joining rune or the string boundary comes first.
func neighbor(units []unit, i, step int) *unit {
	for j := i + step; j >= 0 && j < len(units); j += step {
		if units[j].transparent {
			continue
		}
		if !units[j].joining {
			return nil
		}
		return &units[j]
	}
	return nil
}
