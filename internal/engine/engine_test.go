package engine

import "testing"

func TestParams(t *testing.T) {
	e := Engine{Name: "google", BaseURL: "https://www.google.com/search"}

	p := e.Params("go generics", 3)
	if p.Get("q") != "go generics" {
		t.Errorf("unexpected q %q", p.Get("q"))
	}
	if p.Get("start") != "20" {
		t.Errorf("page 3 should start at 20, got %q", p.Get("start"))
	}
	if p.Get("num") != "10" || p.Get("hl") != "en" || p.Get("safe") != "active" {
		t.Errorf("unexpected fixed params: %v", p)
	}
}

func TestParams_PageClamped(t *testing.T) {
	e := Engine{Name: "g"}
	if got := e.Params("x", 0).Get("start"); got != "0" {
		t.Errorf("page below 1 should clamp to start=0, got %q", got)
	}
}

func TestSuggestParams(t *testing.T) {
	p := SuggestParams("gol")
	if p.Get("client") != "chrome" || p.Get("q") != "gol" {
		t.Errorf("unexpected suggest params: %v", p)
	}
}
