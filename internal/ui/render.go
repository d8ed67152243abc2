package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"coerceo_go/internal/game"
)

const hexSide = 52.0

var (
	colBackground = color.RGBA{24, 26, 30, 255}
	colFieldLight = color.RGBA{196, 166, 124, 255}
	colFieldDark  = color.RGBA{116, 84, 56, 255}
	colFieldEdge  = color.RGBA{40, 32, 24, 255}
	colWhitePiece = color.RGBA{236, 232, 225, 255}
	colBlackPiece = color.RGBA{32, 30, 28, 255}
	colSelected   = color.RGBA{90, 160, 220, 200}
	colTarget     = color.RGBA{110, 190, 110, 190}
	colExchange   = color.RGBA{210, 110, 110, 190}
	colText       = color.RGBA{220, 220, 220, 255}
)

// whiteImage backs the triangle fills; drawing a vertex-colored subimage of
// a plain white texture is the stock ebiten way to rasterize solid shapes.
var whiteImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}()

var whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

// tileCenter maps a tile coordinate to its pixel center. The board's x axis
// runs up-right, so screen y subtracts the axial height.
func tileCenter(h game.HexCoord) (float64, float64) {
	cx := float64(WindowWidth) / 2
	cy := float64(WindowHeight)/2 + 10
	x := cx + 1.5*hexSide*float64(h.X)
	y := cy - math.Sqrt(3)*hexSide*(float64(h.Y)+float64(h.X)/2)
	return x, y
}

// hexVertex returns corner k of a flat-top hexagon, k counterclockwise from
// the right-hand corner.
func hexVertex(cx, cy float64, k int) (float64, float64) {
	a := float64(k) * math.Pi / 3
	return cx + hexSide*math.Cos(a), cy - hexSide*math.Sin(a)
}

// fieldTriangle returns the corners of a field: the tile center plus the
// two hexagon corners of the edge the field faces.
func fieldTriangle(id game.FieldID) [3][2]float64 {
	cx, cy := tileCenter(id.Coord())
	f := id.Sub()
	x1, y1 := hexVertex(cx, cy, (8-f)%6)
	x2, y2 := hexVertex(cx, cy, (7-f)%6)
	return [3][2]float64{{cx, cy}, {x1, y1}, {x2, y2}}
}

func fieldCentroid(id game.FieldID) (float64, float64) {
	tri := fieldTriangle(id)
	return (tri[0][0] + tri[1][0] + tri[2][0]) / 3,
		(tri[0][1] + tri[1][1] + tri[2][1]) / 3
}

func fillTriangle(dst *ebiten.Image, tri [3][2]float64, clr color.RGBA) {
	var vs [3]ebiten.Vertex
	for i, p := range tri {
		vs[i] = ebiten.Vertex{
			DstX:   float32(p[0]),
			DstY:   float32(p[1]),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(clr.R) / 255,
			ColorG: float32(clr.G) / 255,
			ColorB: float32(clr.B) / 255,
			ColorA: float32(clr.A) / 255,
		}
	}
	dst.DrawTriangles(vs[:], []uint16{0, 1, 2}, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func strokeTriangle(dst *ebiten.Image, tri [3][2]float64, clr color.RGBA) {
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		vector.StrokeLine(dst,
			float32(tri[i][0]), float32(tri[i][1]),
			float32(tri[j][0]), float32(tri[j][1]),
			1, clr, true)
	}
}

func drawFrame(dst *ebiten.Image, gs *GameScreen) {
	dst.Fill(colBackground)
	board := gs.state.Board()

	for id := game.FieldID(0); id < game.NumFields; id++ {
		if !board.TileExtant(id.Tile()) {
			continue
		}
		tri := fieldTriangle(id)
		fill := colFieldLight
		if id.Sub()%2 == 0 {
			fill = colFieldDark
		}
		switch {
		case id == gs.selected:
			fill = colSelected
		case gs.targets[id]:
			fill = colTarget
		case gs.exchange:
			if c, ok := board.PieceAt(id); ok && c == game.Black {
				fill = colExchange
			}
		}
		fillTriangle(dst, tri, fill)
		strokeTriangle(dst, tri, colFieldEdge)
	}

	for id := game.FieldID(0); id < game.NumFields; id++ {
		c, ok := board.PieceAt(id)
		if !ok {
			continue
		}
		x, y := fieldCentroid(id)
		clr := colWhitePiece
		rim := colBlackPiece
		if c == game.Black {
			clr, rim = colBlackPiece, colWhitePiece
		}
		vector.DrawFilledCircle(dst, float32(x), float32(y), hexSide*0.22, clr, true)
		vector.StrokeCircle(dst, float32(x), float32(y), hexSide*0.22, 1.5, rim, true)
	}

	drawHUD(dst, gs)
}

func drawHUD(dst *ebiten.Image, gs *GameScreen) {
	st := gs.state
	lines := []string{
		fmt.Sprintf("%s  exchange rate %d", st.Variant(), st.ExchangeRate()),
		fmt.Sprintf("pieces  W %d  B %d", st.Pieces(game.White), st.Pieces(game.Black)),
		fmt.Sprintf("tiles   W %d  B %d", st.CapturedTiles(game.White), st.CapturedTiles(game.Black)),
	}
	switch out := st.Outcome(); {
	case out != game.Ongoing:
		lines = append(lines, fmt.Sprintf("game over: %s  (N for a new game)", out))
	case gs.aiBusy:
		lines = append(lines, "engine is thinking...")
	case gs.exchange:
		lines = append(lines, "click a black piece to exchange (E to cancel)")
	default:
		lines = append(lines, fmt.Sprintf("%s to move  [E]xchange [U]ndo [N]ew", st.Turn()))
	}
	for i, l := range lines {
		text.Draw(dst, l, basicfont.Face7x13, 12, 20+i*16, colText)
	}
	if n := len(st.History()); n > 0 {
		last := st.History()[n-1]
		text.Draw(dst, "last: "+last.String(), basicfont.Face7x13, 12, 20+len(lines)*16, colText)
	}
}
