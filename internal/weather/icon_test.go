package weather

import "testing"

func TestIconFor(t *testing.T) {
	tests := []struct {
		text string
		want Icon
	}{
		{text: "雨 のち 雪", want: IconSnow},
		{text: "くもり 時々 雨", want: IconRain},
		{text: "晴れ", want: IconSunny},
		{text: "くもり", want: IconCloud},
		{text: "", want: IconCloud},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			if got := IconFor(tc.text); got != tc.want {
				t.Fatalf("IconFor(%q): expected %q, got %q", tc.text, tc.want, got)
			}
		})
	}
}

func TestGroupByCenterStartsGroupOnChange(t *testing.T) {
	groups := GroupByCenter([]Area{
		{Code: "1", Center: "a"},
		{Code: "2", Center: "a"},
		{Code: "3", Center: "b"},
	})

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0].Areas) != 2 || groups[1].Areas[0].Code != "3" {
		t.Fatalf("unexpected grouping: %#v", groups)
	}
}
