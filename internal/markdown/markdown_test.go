package markdown

import (
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

func TestRenderRecoversFromRendererPanic(t *testing.T) {
	key := rendererKey{style: StyleASCII, width: 20}

	rendererMu.Lock()
	prev, hadPrev := renderers[key]
	renderers[key] = panicRenderer{}
	rendererMu.Unlock()

	defer func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[key] = prev
		} else {
			delete(renderers, key)
		}
		rendererMu.Unlock()
	}()

	if out := Render(StyleASCII, 20, 0, "hello\n"); out != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", out)
	}
}

func TestRenderEmpty(t *testing.T) {
	if out := Render(StyleASCII, 80, 2, " \r\n\n"); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestRenderASCIIIndents(t *testing.T) {
	out := Render(StyleASCII, 40, 4, "Buy **milk** and eggs")
	if !strings.Contains(out, "milk") {
		t.Fatalf("expected rendered text, got %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if line != "" && !strings.HasPrefix(line, "    ") {
			t.Fatalf("expected every line indented, got %q", out)
		}
	}
}

func TestStyleFor(t *testing.T) {
	if StyleFor("light", false) != StyleASCII {
		t.Fatal("expected ascii without color")
	}
	if StyleFor("light", true) != StyleLight || StyleFor("dark", true) != StyleDark {
		t.Fatal("expected theme styles with color")
	}
}
