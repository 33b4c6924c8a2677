package chart

import (
	"bytes"
	"strings"
	"testing"
)

func TestRender_SVG(t *testing.T) {
	c := newChart(t, example())

	var buf bytes.Buffer
	if err := Render(&buf, c, SVG, DefaultStyle()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, "<svg") || !strings.Contains(got, "</svg>") {
		t.Fatalf("Render() is not an svg document:\n%s", got)
	}
	for _, tk := range c.TimeTicks {
		if !strings.Contains(got, tk.Label) {
			t.Errorf("Render() missing time label %q", tk.Label)
		}
	}
}

func TestRender_Empty(t *testing.T) {
	c := newChart(t, nil)

	var buf bytes.Buffer
	if err := Render(&buf, c, SVG, DefaultStyle()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "no data") {
		t.Errorf("Render(empty) has no caption:\n%s", buf.String())
	}
}

func TestRender_PNG(t *testing.T) {
	c := newChart(t, example())

	var buf bytes.Buffer
	if err := Render(&buf, c, PNG, DefaultStyle()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Errorf("Render(PNG) output does not start with the PNG signature")
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{SVG, PNG} {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v, want %v", f.String(), got, err, f)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Errorf("ParseFormat(gif) want error")
	}
}
