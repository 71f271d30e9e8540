package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/interpolate"
	"github.com/dshills/panelplan/pkg/layout"
	"github.com/dshills/panelplan/pkg/panelplan"
)

// PlanSVGOptions configures a diagnostic SVG export of a
// DesignResult: a score-grid heatmap with panels, pillars, and
// roadways overlaid. This is a debug aid for development, not the
// DXF/canvas-editor surface the panel-layout spec excludes from the
// module's scope.
type PlanSVGOptions struct {
	Width, Height int
	Margin        int
	Title         string
	ShowHeatmap   bool
	Grid          *interpolate.Grid // nil disables the heatmap even if ShowHeatmap is true
}

// DefaultPlanSVGOptions returns sensible defaults: a 1200x900 canvas,
// a 40px margin, and the heatmap enabled.
func DefaultPlanSVGOptions() PlanSVGOptions {
	return PlanSVGOptions{
		Width:       1200,
		Height:      900,
		Margin:      40,
		Title:       "Panel Layout",
		ShowHeatmap: true,
	}
}

// ExportPlanSVG renders a DesignResult to SVG.
func ExportPlanSVG(result *panelplan.DesignResult, boundary geometry.Polygon, opts PlanSVGOptions) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("result cannot be nil")
	}
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	minX, maxX, minY, maxY := geometry.AxisAlignedExtents(boundary)
	proj := newProjector(minX, maxX, minY, maxY, opts.Width, opts.Height, opts.Margin)

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#101018")

	if opts.ShowHeatmap && opts.Grid != nil {
		drawHeatmap(canvas, opts.Grid, proj)
	}

	drawBoundary(canvas, boundary, proj)
	drawRoadways(canvas, result.Roadways, proj)
	drawPillars(canvas, result.Pillars, proj)
	drawPanels(canvas, result.Panels, proj)

	if opts.Title != "" {
		canvas.Text(opts.Width/2, 24, opts.Title, "text-anchor:middle;font-size:18px;fill:#e2e8f0;font-family:sans-serif")
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SavePlanSVGToFile renders and writes a DesignResult's SVG diagnostic
// export to filename.
func SavePlanSVGToFile(result *panelplan.DesignResult, boundary geometry.Polygon, filename string, opts PlanSVGOptions) error {
	data, err := ExportPlanSVG(result, boundary, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// projector maps world coordinates into the canvas, flipping Y since
// SVG grows downward while the domain grows upward.
type projector struct {
	minX, minY   float64
	scaleX, scaleY float64
	margin       int
	height       int
}

func newProjector(minX, maxX, minY, maxY float64, width, height, margin int) projector {
	w := maxX - minX
	h := maxY - minY
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	usableW := float64(width - 2*margin)
	usableH := float64(height - 2*margin)
	return projector{
		minX: minX, minY: minY,
		scaleX: usableW / w, scaleY: usableH / h,
		margin: margin, height: height,
	}
}

func (p projector) point(x, y float64) (int, int) {
	px := p.margin + int((x-p.minX)*p.scaleX)
	py := p.height - p.margin - int((y-p.minY)*p.scaleY)
	return px, py
}

func drawBoundary(canvas *svg.SVG, boundary geometry.Polygon, proj projector) {
	xs := make([]int, len(boundary))
	ys := make([]int, len(boundary))
	for i, v := range boundary {
		xs[i], ys[i] = proj.point(v.X, v.Y)
	}
	canvas.Polygon(xs, ys, "fill:none;stroke:#718096;stroke-width:2")
}

func drawHeatmap(canvas *svg.SVG, grid *interpolate.Grid, proj projector) {
	info := grid.Info
	for row := 0; row < info.Resolution; row++ {
		for col := 0; col < info.Resolution; col++ {
			v, ok := grid.At(row, col)
			if !ok {
				continue
			}
			wp := info.World(row, col)
			x0, y0 := proj.point(wp.X, wp.Y)
			x1, y1 := proj.point(wp.X+info.StepX, wp.Y+info.StepY)
			color := heatColor(v)
			canvas.Rect(x0, y1, x1-x0, y0-y1, fmt.Sprintf("fill:%s;stroke:none", color))
		}
	}
}

// heatColor maps a [0,100] score to a red-to-green gradient.
func heatColor(score float64) string {
	t := score / 100
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	red := int(255 * (1 - t))
	green := int(255 * t)
	return fmt.Sprintf("rgb(%d,%d,60)", red, green)
}

func drawPanels(canvas *svg.SVG, panels []layout.Panel, proj projector) {
	for _, panel := range panels {
		xs := make([]int, 4)
		ys := make([]int, 4)
		for i, c := range panel.Corners {
			xs[i], ys[i] = proj.point(c.X, c.Y)
		}
		style := "fill:rgba(66,153,225,0.35);stroke:#4299e1;stroke-width:1.5"
		if panel.Locked {
			style = "fill:rgba(246,173,85,0.35);stroke:#f6ad55;stroke-width:1.5"
		}
		canvas.Polygon(xs, ys, style)
		cx, cy := proj.point(panel.Center.X, panel.Center.Y)
		canvas.Text(cx, cy, panel.ID, "text-anchor:middle;font-size:10px;fill:#e2e8f0;font-family:sans-serif")
	}
}

func drawPillars(canvas *svg.SVG, pillars []layout.Pillar, proj projector) {
	for _, pillar := range pillars {
		xs := make([]int, 4)
		ys := make([]int, 4)
		for i, c := range pillar.Corners {
			xs[i], ys[i] = proj.point(c.X, c.Y)
		}
		canvas.Polygon(xs, ys, "fill:rgba(113,128,150,0.5);stroke:none")
	}
}

func drawRoadways(canvas *svg.SVG, roadways []layout.Roadway, proj projector) {
	colors := map[layout.RoadwayKind]string{
		layout.RoadwayMain:      "#f56565",
		layout.RoadwayTransport: "#48bb78",
		layout.RoadwayReturn:    "#9f7aea",
		layout.RoadwayCut:       "#ecc94b",
		layout.RoadwayBranch:    "#4299e1",
	}
	for _, rw := range roadways {
		if len(rw.Path) < 2 {
			continue
		}
		color := colors[rw.Kind]
		if color == "" {
			color = "#cbd5e0"
		}
		for i := 0; i+1 < len(rw.Path); i++ {
			x0, y0 := proj.point(rw.Path[i].X, rw.Path[i].Y)
			x1, y1 := proj.point(rw.Path[i+1].X, rw.Path[i+1].Y)
			canvas.Line(x0, y0, x1, y1, fmt.Sprintf("stroke:%s;stroke-width:2", color))
		}
	}
}
