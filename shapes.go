// shapes.go - Immediate-mode renderables

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package zeni

// Triangle is a single face. Front faces wind counter-clockwise as seen on
// screen.
type Triangle struct {
	Vertices [3]Vertex
	Material *Material
	Video    *Video // needed only when Material is set
}

func (t *Triangle) PreRender()  { preRenderMaterial(t.Video, t.Material) }
func (t *Triangle) PostRender() { postRenderMaterial(t.Video, t.Material) }

func (t *Triangle) RenderTo(dst DrawTarget) error {
	return dst.DrawVertices(PrimitiveTriangles, t.Vertices[:])
}

// Quad is a four-vertex face, split into two triangles when drawn.
type Quad struct {
	Vertices [4]Vertex
	Material *Material
	Video    *Video
}

// NewRect2D builds an axis-aligned quad in 2D view coordinates with the
// full texture mapped onto it.
func NewRect2D(topLeft, bottomRight Point2f, c Color) *Quad {
	q := &Quad{}
	corners := [4]Point2f{
		topLeft,
		{topLeft.X, bottomRight.Y},
		bottomRight,
		{bottomRight.X, topLeft.Y},
	}
	uvs := [4]Point2f{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	for i := range corners {
		q.Vertices[i] = Vertex{
			Position: Point3f{corners[i].X, corners[i].Y, 0},
			Normal:   Vector3f{0, 0, 1},
			Color:    c,
			TexCoord: uvs[i],
		}
	}
	return q
}

func (q *Quad) PreRender()  { preRenderMaterial(q.Video, q.Material) }
func (q *Quad) PostRender() { postRenderMaterial(q.Video, q.Material) }

func (q *Quad) RenderTo(dst DrawTarget) error {
	return dst.DrawVertices(PrimitiveQuads, q.Vertices[:])
}

func preRenderMaterial(v *Video, m *Material) {
	if v == nil || m == nil {
		return
	}
	if err := v.SetMaterial(*m); err != nil {
		Logger().Warn("material not applied", "texture", m.Texture, "err", err)
	}
}

func postRenderMaterial(v *Video, m *Material) {
	if v == nil || m == nil {
		return
	}
	v.UnsetMaterial(*m)
}
