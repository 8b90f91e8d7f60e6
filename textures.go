// textures.go - Named texture registry used by Video.ApplyTextureName

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

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Texture is an image known to the registry, or a render target created
// with Textures.Create. Id 0 is never assigned.
type Texture struct {
	id     uint32
	name   string
	repeat bool
	target bool
	size   Point2i
	img    image.Image
	path   string // set while a lazy texture is not yet decoded
}

func (t *Texture) ID() uint32           { return t.id }
func (t *Texture) Name() string         { return t.name }
func (t *Texture) Repeat() bool         { return t.repeat }
func (t *Texture) IsRenderTarget() bool { return t.target }

// Size is zero for a lazy texture until its first Lookup.
func (t *Texture) Size() Point2i { return t.size }

// Image is nil for render targets and undecoded lazy textures.
func (t *Texture) Image() image.Image { return t.img }

type Textures struct {
	mu     *Mutex
	byName map[string]*Texture
	byID   map[uint32]*Texture
	nextID uint32
	loads  singleflight.Group

	open func(path string) (io.ReadCloser, error)
}

func NewTextures() *Textures {
	return &Textures{
		mu:     NewMutex(),
		byName: make(map[string]*Texture),
		byID:   make(map[uint32]*Texture),
		nextID: 1,
		open: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// insert registers tex under its name, keeping the id of any texture it
// replaces. Caller holds t.mu.
func (t *Textures) insert(tex *Texture) *Texture {
	if old, ok := t.byName[tex.name]; ok {
		tex.id = old.id
	} else {
		tex.id = t.nextID
		t.nextID++
	}
	t.byName[tex.name] = tex
	t.byID[tex.id] = tex
	return tex
}

func (t *Textures) Register(name string, img image.Image, repeat bool) (*Texture, error) {
	if img == nil {
		return nil, errors.Errorf("texture %q: nil image", name)
	}
	b := img.Bounds()
	tex := &Texture{name: name, repeat: repeat, img: img, size: Point2i{b.Dx(), b.Dy()}}
	err := t.mu.Do(func() error {
		t.insert(tex)
		return nil
	})
	return tex, err
}

// Load registers the image file at path. A lazy texture is decoded on its
// first Lookup instead of now.
func (t *Textures) Load(name, path string, repeat, lazy bool) (*Texture, error) {
	if lazy {
		tex := &Texture{name: name, repeat: repeat, path: path}
		err := t.mu.Do(func() error {
			t.insert(tex)
			return nil
		})
		return tex, err
	}

	img, err := t.decodeFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "texture %q", name)
	}
	return t.Register(name, img, repeat)
}

// LoadAll eagerly loads every name->path pair concurrently.
func (t *Textures) LoadAll(ctx context.Context, paths map[string]string, repeat bool) error {
	g, ctx := errgroup.WithContext(ctx)
	for name, path := range paths {
		name, path := name, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := t.Load(name, path, repeat, false)
			return err
		})
	}
	return g.Wait()
}

// Create registers an empty render target of the given size.
func (t *Textures) Create(name string, size Point2i, repeat bool) (*Texture, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.Errorf("texture %q: invalid render target size %dx%d", name, size.X, size.Y)
	}
	tex := &Texture{name: name, repeat: repeat, target: true, size: size}
	err := t.mu.Do(func() error {
		t.insert(tex)
		return nil
	})
	return tex, err
}

func (t *Textures) ID(name string) (uint32, error) {
	var id uint32
	err := t.mu.Do(func() error {
		tex, ok := t.byName[name]
		if !ok {
			return errors.Wrapf(ErrTextureNotFound, "name %q", name)
		}
		id = tex.id
		return nil
	})
	return id, err
}

// Lookup returns the texture with the given id, decoding it first if it
// was loaded lazily. Concurrent lookups of the same lazy texture decode it
// once.
func (t *Textures) Lookup(id uint32) (*Texture, error) {
	var tex *Texture
	var path string
	err := t.mu.Do(func() error {
		var ok bool
		if tex, ok = t.byID[id]; !ok {
			return errors.Wrapf(ErrTextureNotFound, "id %d", id)
		}
		path = tex.path
		return nil
	})
	if err != nil || path == "" {
		return tex, err
	}

	_, err, _ = t.loads.Do(tex.name, func() (any, error) {
		img, err := t.decodeFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "texture %q", tex.name)
		}
		b := img.Bounds()
		return nil, t.mu.Do(func() error {
			tex.img = img
			tex.size = Point2i{b.Dx(), b.Dy()}
			tex.path = ""
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return tex, nil
}

func (t *Textures) Get(name string) (*Texture, error) {
	id, err := t.ID(name)
	if err != nil {
		return nil, err
	}
	return t.Lookup(id)
}

func (t *Textures) Unload(name string) error {
	return t.mu.Do(func() error {
		tex, ok := t.byName[name]
		if !ok {
			return errors.Wrapf(ErrTextureNotFound, "name %q", name)
		}
		delete(t.byName, name)
		delete(t.byID, tex.id)
		return nil
	})
}

func (t *Textures) Count() int {
	var n int
	_ = t.mu.Do(func() error {
		n = len(t.byName)
		return nil
	})
	return n
}

func (t *Textures) decodeFile(path string) (image.Image, error) {
	f, err := t.open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	Logger().Debug("texture decoded", "path", path, "format", format, "size", img.Bounds().Size())
	return img, nil
}
