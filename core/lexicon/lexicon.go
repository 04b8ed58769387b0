// Package lexicon holds the sacred and honorific terms of the Risale corpus.
//
// The list is ordered. Several concepts appear in more than one orthographic
// variant (with and without circumflex, with a trailing suffix already attached),
// and matchers built from the list try the entries in this order, so a variant
// listed earlier wins over one listed later when both could match at the same
// position. Do not sort it.
package lexicon

// SacredTerms are the surface forms reviewed for apostrophe-attached suffixes.
var SacredTerms = []string{
	// Names and attributes of God
	"Allah", "Rabb", "Rab", "İlah", "Mabud", "Hâlık", "Halık", "Sâni", "Sani",
	"Rahmân", "Rahman", "Rahîm", "Rahim", "Kerîm", "Kerim", "Hakîm", "Hakim",
	"Alîm", "Alim", "Kadîr", "Kadir", "Kuddûs", "Kuddus", "Kuddüs",
	"Adl", "Ferd", "Hayy", "Kayyûm", "Kayyum", "Şâfi", "Şafi", "Rezzâk", "Rezzak",
	"Cemîl", "Cemil", "Celîl", "Celil", "Vâhid", "Vahid", "Ehad", "Samed",

	// Basmala
	"Bismillah", "Bi's-mi'llah", "Bismillahi",

	// Prophethood and revelation
	"Resul", "Nebi", "Peygamber", "Habib", "Sünnet", "Hadis", "Vahiy",
	"Kur'an", "Kur'ân", "Furkan", "Kelamullah",

	// Author and collection
	"Bediüzzaman", "Said Nursi", "Risale-i Nur", "Risale-i Nur'u",

	// Formulae
	"Vesselam", "Elhamdülillah", "Sübhanallah", "Maşallah", "İnşallah",
	"Barekallah", "Ve aleykümselam", "Aleykümselam",
}

// Terms returns a copy of SacredTerms so callers can extend it without
// touching the shared list.
func Terms() []string {
	out := make([]string, len(SacredTerms))
	copy(out, SacredTerms)
	return out
}
