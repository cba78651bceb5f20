package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyChoiceOrderedSubstring(t *testing.T) {
	spec := Choice(YesNo("Sí", "No")...)

	cases := []struct {
		name  string
		text  string
		want  Result
		token string
	}{
		{name: "canonical yes", text: "Sí", want: Matched, token: "Sí"},
		{name: "unaccented yes", text: "Si", want: Matched, token: "Sí"},
		{name: "lowercase yes", text: "si claro", want: Matched, token: "Sí"},
		{name: "basque yes", text: "Bai", want: Matched, token: "Sí"},
		{name: "canonical no", text: "No", want: Matched, token: "No"},
		{name: "basque no", text: "ez", want: Matched, token: "No"},
		{name: "embedded variant", text: "pues sí, gracias", want: Matched, token: "Sí"},
		{name: "case sensitive miss", text: "SI", want: Unrecognized},
		{name: "unrelated text", text: "quizás", want: Unrecognized},
		{name: "empty", text: "", want: Unrecognized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.text, spec)
			assert.Equal(t, tc.want, got.Result)
			if tc.want == Matched {
				assert.Equal(t, tc.token, got.Token)
			}
		})
	}
}

func TestClassifyChoiceFirstVariantWins(t *testing.T) {
	// "1.75" also contains the bare "1" variant; the earlier, more
	// specific entry must win.
	spec := Choice(
		Entry{Variant: "1.75", Token: "fino"},
		Entry{Variant: "1", Token: "fino"},
		Entry{Variant: "3", Token: "grueso"},
	)

	got := Classify("1.75", spec)
	assert.Equal(t, Matched, got.Result)
	assert.Equal(t, "fino", got.Token)

	got = Classify("13", spec)
	assert.Equal(t, "fino", got.Token, "ordered list resolves overlapping variants")
}

func TestClassifyNumeric(t *testing.T) {
	spec := Integer()

	cases := []struct {
		text string
		ok   bool
		n    int
	}{
		{text: "12", ok: true, n: 12},
		{text: " 7 ", ok: true, n: 7},
		{text: "0", ok: true, n: 0},
		{text: "-3", ok: true, n: -3},
		{text: "12 viseras", ok: false},
		{text: "doce", ok: false},
		{text: "", ok: false},
	}

	for _, tc := range cases {
		got := Classify(tc.text, spec)
		if tc.ok {
			assert.Equal(t, Numeric, got.Result, "text %q", tc.text)
			assert.Equal(t, tc.n, got.Number)
		} else {
			assert.Equal(t, Unrecognized, got.Result, "text %q", tc.text)
		}
	}
}

func TestClassifyText(t *testing.T) {
	spec := Text()

	got := Classify("Calle Mayor 3, 2º izq", spec)
	assert.Equal(t, Matched, got.Result)
	assert.Equal(t, "Calle Mayor 3, 2º izq", got.Token)

	assert.Equal(t, Unrecognized, Classify("", spec).Result)
}
