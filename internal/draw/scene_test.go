package draw_test

import (
	"strings"
	"testing"

	"github.com/jialihong/rectangle/internal/draw"
)

func TestGenerateWrapsShapesInSvg(t *testing.T) {
	s := draw.NewScene()
	s.Define(0, 0, 0, 0, 100, 100)
	s.DrawRect(1, 2, 10, 20, "red", "black", "", 1)

	out := s.Generate()
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1">`+"\n") {
		t.Fatalf("unexpected svg header: %q", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("unexpected svg footer: %q", out)
	}
	if !strings.Contains(out, `x="1" y="2" width="10" height="20"`) {
		t.Fatalf("rect attributes missing: %q", out)
	}
}

func TestPushPopOriginOffsetsSubsequentShapes(t *testing.T) {
	s := draw.NewScene()
	s.PushOrigin(5, 5)
	s.DrawText(1, 1, 10, "inside")
	s.PopOrigin()
	s.DrawText(1, 1, 10, "outside")

	out := s.Generate()
	if !strings.Contains(out, `x="6" y="6"`) {
		t.Fatalf("expected offset text coordinates: %q", out)
	}
	if !strings.Contains(out, `x="1" y="1"`) {
		t.Fatalf("expected un-offset text coordinates after pop: %q", out)
	}
}

func TestPopOriginOnEmptyStackIsNoop(t *testing.T) {
	s := draw.NewScene()
	s.PopOrigin()
	s.DrawRect(0, 0, 1, 1, "red", "black", "", 1)
	if !strings.Contains(s.Generate(), `x="0" y="0"`) {
		t.Fatal("expected no panic and no offset from an unbalanced PopOrigin")
	}
}

func TestDrawPolygonRendersPointsList(t *testing.T) {
	s := draw.NewScene()
	s.DrawPolygon(10, 10, []draw.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 0, Y: 5}}, "blue", "evenodd", "black", "", 1)

	out := s.Generate()
	if !strings.Contains(out, `points="10,10 15,10 10,15"`) {
		t.Fatalf("unexpected polygon points: %q", out)
	}
	if !strings.Contains(out, `fill-rule:evenodd`) {
		t.Fatalf("expected fill-rule in style block: %q", out)
	}
}

func TestDrawLineUsesDeltaEndpoints(t *testing.T) {
	s := draw.NewScene()
	s.DrawLine(0, 0, 1, 1, 4, 4, "black", "", 2)

	out := s.Generate()
	if !strings.Contains(out, `x1="1" y1="1" x2="4" y2="4"`) {
		t.Fatalf("unexpected line endpoints: %q", out)
	}
}
