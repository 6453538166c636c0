package source

import (
	"regexp"
	"testing"
)

func TestCardParser_Topics(t *testing.T) {
	markup := []byte(`
		<div class="trend-card">
			<ol class="trend-card__list">
				<li><a href="/1">First Topic</a></li>
				<li><a href="/2">  Second Topic  </a></li>
				<li><a href="/3">First Topic</a></li>
				<li><a href="/4"> </a></li>
			</ol>
		</div>`)

	got := CardParser{}.Topics(markup)
	want := []string{"First Topic", "Second Topic"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCardParser_CustomSelector(t *testing.T) {
	markup := []byte(`<ul id="topics"><li><span>alpha</span></li><li><span>beta</span></li></ul>`)

	got := CardParser{Selector: "#topics li span"}.Topics(markup)
	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Fatalf("got %v, want [alpha beta]", got)
	}
}

func TestPatternParser_Topics(t *testing.T) {
	markup := []byte(`
		<a class="trend-link" href="/a">Rock &amp; Roll</a>
		<a class="other" href="/x">Noise</a>
		<a class="nav trend-link" href="/b">Deux</a>
		<a class="trend-link" href="/c">Rock &amp; Roll</a>`)

	got := PatternParser{}.Topics(markup)
	want := []string{"Rock & Roll", "Deux"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPatternParser_CustomPattern(t *testing.T) {
	markup := []byte(`<h2 data-topic="one"></h2><h2 data-topic="two"></h2>`)

	p := PatternParser{Pattern: regexp.MustCompile(`data-topic="([^"]+)"`)}
	got := p.Topics(markup)
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("got %v, want [one two]", got)
	}
}
