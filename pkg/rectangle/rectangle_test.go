package rectangle_test

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jialihong/rectangle/pkg/rectangle"
)

func TestRunRendersSVG(t *testing.T) {
	engine := rectangle.New()
	svg, err := engine.Run([]rectangle.Source{
		{Name: "box.rec", Text: `def Box {
			int width: 10;
			int height: 10;
			void draw() {
				defineScene(0, 0, 0, 0, 100, 100);
				drawRect(0, 0, width, height, "red", "black", "", 1);
			}
		}`},
		{Name: "scene.rec", Text: `Box { width: 20 }`},
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Fatalf("expect a full SVG document, got:\n%s", svg)
	}
	if !strings.Contains(svg, `width="20"`) {
		t.Fatalf("expect the bound width to reach the rect, got:\n%s", svg)
	}
}

func TestCompileNoSourcesFails(t *testing.T) {
	engine := rectangle.New()
	if _, err := engine.Compile(nil); err == nil {
		t.Fatalf("expect an error compiling zero sources")
	}
}

func TestRunNestedInstancesMatchesSnapshot(t *testing.T) {
	engine := rectangle.New()
	svg, err := engine.Run([]rectangle.Source{
		{Name: "box.rec", Text: `def Box {
			int width: 10;
			int height: 10;
			string fill: "red";
			void draw() {
				drawRect(0, 0, width, height, fill, "black", "", 1);
			}
		}`},
		{Name: "scene.rec", Text: `Box {
			width: 30
			fill: "blue"
			Box { width: 12 height: 12 fill: "green" }
		}`},
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	snaps.MatchSnapshot(t, svg)
}

func TestRunPrintWritesToStdout(t *testing.T) {
	engine := rectangle.New()
	var out strings.Builder
	_, err := engine.Run([]rectangle.Source{
		{Name: "box.rec", Text: `def Box { void draw() { print("hi"); } }`},
		{Name: "scene.rec", Text: `Box { }`},
	}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "hi" {
		t.Fatalf("expect print(\"hi\") to reach stdout, got %q", out.String())
	}
}
