package gpu

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/rhfw/rhfw/resource"
)

const textureKind = "gpu.texture"

// DecodeImage decodes png, jpeg, bmp or webp data into tightly packed RGBA.
func DecodeImage(data []byte) (*image.RGBA, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "gpu: decoding image")
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*rgba.Rect.Dx() && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	Logger().Debug("converted image to rgba", zap.String("format", format))
	return rgba, nil
}

// Texture is a 2D RGBA8 texture and its default view. The decoded pixels are
// kept so the texture can be recreated after the context is lost.
type Texture struct {
	*resource.Shareable

	ctx   *Context
	label string
	img   *image.RGBA
	tex   *wgpu.Texture
	view  *wgpu.TextureView
}

func (c *Context) NewTexture(label string, img *image.RGBA) (*Texture, error) {
	if img == nil || img.Rect.Empty() {
		return nil, errors.Errorf("gpu: texture %s has no pixels", label)
	}
	t := &Texture{
		ctx:   c,
		label: label,
		img:   img,
	}
	t.Shareable = resource.New(textureKind, resource.Funcs{
		LoadFunc: t.create,
		FreeFunc: t.destroy,
	})
	if err := c.track(t.Shareable); err != nil {
		return nil, err
	}
	return t, nil
}

// NewTextureFromData decodes data and creates a texture from it.
func (c *Context) NewTextureFromData(label string, data []byte) (*Texture, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return c.NewTexture(label, img)
}

func (t *Texture) Label() string { return t.label }

func (t *Texture) Size() (width, height uint32) {
	return uint32(t.img.Rect.Dx()), uint32(t.img.Rect.Dy())
}

// View returns the texture view, or nil while unloaded.
func (t *Texture) View() *wgpu.TextureView { return t.view }

func (t *Texture) create() error {
	dev := t.ctx.Device()
	if dev == nil {
		return ErrContextLost
	}
	w, h := t.Size()
	extent := wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	tex, err := dev.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         t.label,
		Size:          extent,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return errors.Wrapf(err, "gpu: creating texture %s", t.label)
	}
	err = dev.queue.WriteTexture(tex.AsImageCopy(), t.img.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  4 * w,
		RowsPerImage: h,
	}, &extent)
	if err != nil {
		tex.Release()
		return errors.Wrapf(err, "gpu: uploading texture %s", t.label)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return errors.Wrapf(err, "gpu: creating view of %s", t.label)
	}
	t.tex = tex
	t.view = view
	return nil
}

func (t *Texture) destroy() {
	t.view.Release()
	t.tex.Release()
	t.view = nil
	t.tex = nil
}
