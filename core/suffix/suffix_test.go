package suffix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScan(t *testing.T) {
	s := Default()
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"genitive", "Allah'ın rahmeti", []string{"Allah'ın"}},
		{"no term", "mutluluk", nil},
		{"term without suffix", "Allah ve Rabb", nil},
		{"curly apostrophe", "Allah’a şükür", []string{"Allah’a"}},
		{"case insensitive", "ALLAH'IN", []string{"ALLAH'IN"}},
		{"term with inner apostrophe", "Kur'an'ın hakikatleri", []string{"Kur'an'ın"}},
		{"earlier variant wins", "Rabb'im", []string{"Rabb'im"}},
		{"two words term", "Said Nursi'nin eserleri", []string{"Said Nursi'nin"}},
		{"punctuation before term", "(Allah'ın) ve \"Resul'ün\"", []string{"Allah'ın", "Resul'ün"}},
		{"letter before term", "Vallah'ı", nil},
		{"digit before term", "3Allah'ın", nil},
		{"underscore before term", "_Allah'ın", nil},
		{"turkish letter before term", "şAllah'ın", nil},
		{"resume inside rejected match", "xVe aleykümselam'a", []string{"aleykümselam'a"}},
		{"suffix stops at space", "Peygamber'e ümmet", []string{"Peygamber'e"}},
		{"suffix stops at punctuation", "Hadis'ler.", []string{"Hadis'ler"}},
		{"multiple in one line", "Allah'ın Resul'ü", []string{"Allah'ın", "Resul'ü"}},
		{"dotted capital I term", "İlah'ı", []string{"İlah'ı"}},
		{"Turkish uppercase of dotless i", "HALIK'ın", []string{"HALIK'ın"}},
		{"Turkish uppercase with circumflex", "HÂLIK'ın", []string{"HÂLIK'ın"}},
		{"Turkish uppercase of dotted i", "INŞALLAH'a", []string{"INŞALLAH'a"}},
		{"lowercase of dotted capital", "ilah'ı", []string{"ilah'ı"}},
		{"ASCII capital for dotted capital", "Ilah'ı", []string{"Ilah'ı"}},
		{"uppercase dotless in middle", "KADIR'in", []string{"KADIR'in"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Scan(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scan(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestNewScannerOrder(t *testing.T) {
	// A prefix term that cannot be followed by a separator falls through to
	// the next alternative.
	short := NewScanner([]string{"Rab", "Rabb"})
	if diff := cmp.Diff([]string{"Rabb'im"}, short.Scan("Rabb'im")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	// When both alternatives can match, list order decides what is captured.
	const text = "Risale-i Nur'u'nun"
	listed := NewScanner([]string{"Risale-i Nur", "Risale-i Nur'u"})
	if diff := cmp.Diff([]string{"Risale-i Nur'u"}, listed.Scan(text)); diff != "" {
		t.Errorf("listed order mismatch (-want +got):\n%s", diff)
	}
	reversed := NewScanner([]string{"Risale-i Nur'u", "Risale-i Nur"})
	if diff := cmp.Diff([]string{"Risale-i Nur'u'nun"}, reversed.Scan(text)); diff != "" {
		t.Errorf("reversed order mismatch (-want +got):\n%s", diff)
	}
}

func TestScanIntoIsIdempotent(t *testing.T) {
	s := Default()
	set := NewSet()
	content := "Allah'ın rahmeti.\nAllah'ın kudreti. Allah’ın hikmeti."

	if n := s.ScanInto(content, set); n != 3 {
		t.Errorf("first ScanInto() = %d occurrences, want 3", n)
	}
	first := set.Sorted()
	s.ScanInto(content, set)
	if diff := cmp.Diff(first, set.Sorted()); diff != "" {
		t.Errorf("second scan changed set (-want +got):\n%s", diff)
	}
	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (straight and curly apostrophe are distinct)", set.Len())
	}
	if !set.Has("Allah'ın") || !set.Has("Allah’ın") {
		t.Errorf("unexpected set contents: %v", set.Sorted())
	}
}

func TestSetSample(t *testing.T) {
	set := NewSet()
	for _, v := range []string{"c", "a", "b"} {
		set.Add(v)
	}
	if diff := cmp.Diff([]string{"a", "b"}, set.Sample(2)); diff != "" {
		t.Errorf("Sample(2) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, set.Sample(20)); diff != "" {
		t.Errorf("Sample(20) mismatch (-want +got):\n%s", diff)
	}
}
