package gallery

import (
	"strings"
	"testing"

	"contactsheet/internal/sampling"
)

func TestRenderOrdersTiles(t *testing.T) {
	entries := BuildEntries([]float64{0, 10, 20}, "screenshot_%s.png", "", sampling.Filename)
	data, err := Render(Page{Title: "Vid", Entries: entries})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	html := string(data)
	first := strings.Index(html, `src="screenshot_0.png"`)
	second := strings.Index(html, `src="screenshot_10.png"`)
	third := strings.Index(html, `src="screenshot_20.png"`)
	if first < 0 || second < first || third < second {
		t.Fatalf("tiles missing or out of order:\n%s", html)
	}
	for _, label := range []string{"<p>0:0:0</p>", "<p>0:0:10</p>", "<p>0:0:20</p>"} {
		if !strings.Contains(html, label) {
			t.Fatalf("missing label %s", label)
		}
	}
	if strings.Count(html, `class="img-container"`) != 3 {
		t.Fatalf("expected 3 tiles:\n%s", html)
	}
	if !strings.Contains(html, "<title>Vid</title>") {
		t.Fatal("missing title")
	}
}

func TestRenderEscapesTitle(t *testing.T) {
	data, err := Render(Page{Title: "<script>"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "<title><script>") {
		t.Fatal("title must be escaped")
	}
}

func TestBuildEntriesAbsolute(t *testing.T) {
	entries := BuildEntries([]float64{2.5}, "s_%s.png", "/data/out", sampling.Filename)
	if len(entries) != 1 || entries[0].Src != "file:///data/out/s_2.5.png" || entries[0].Label != "0:0:2" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestBuildEntriesEscapesReservedCharacters(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"relative", "", "shot%23_2.5.png"},
		{"fragment marker in dir", "/data/take #1", "file:///data/take%20%231/shot%23_2.5.png"},
		{"query marker in dir", "/data/what?/out", "file:///data/what%3F/out/shot%23_2.5.png"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries := BuildEntries([]float64{2.5}, "shot#_%s.png", tc.dir, sampling.Filename)
			if string(entries[0].Src) != tc.want {
				t.Fatalf("Src = %q, want %q", entries[0].Src, tc.want)
			}
			data, err := Render(Page{Title: "t", Entries: entries})
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), `src="`+tc.want+`"`) {
				t.Fatalf("rendered source changed:\n%s", data)
			}
		})
	}
}

func TestTitleFromInput(t *testing.T) {
	tests := map[string]string{
		"/videos/my_holiday-2023.mp4": "My Holiday 2023",
		"./input/vid.mp4":             "Vid",
		"":                            "Contact Sheet",
	}
	for input, want := range tests {
		if got := TitleFromInput(input); got != want {
			t.Errorf("TitleFromInput(%q) = %q, want %q", input, got, want)
		}
	}
}
