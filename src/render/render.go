package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"sort"
	"strings"
)

// Renderer rasterizes a Figure and writes it as PNG.
type Renderer interface {
	Name() string
	Render(w io.Writer, fig *Figure) error
}

var renderers = map[string]Renderer{
	"gonum":   GonumRenderer{},
	"gochart": ChartRenderer{},
}

// Lookup returns the renderer registered under name.
func Lookup(name string) (Renderer, error) {
	r, ok := renderers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown renderer %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return r, nil
}

// Names lists the registered renderers, sorted.
func Names() []string {
	out := make([]string, 0, len(renderers))
	for k := range renderers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Raster is an encoded figure plus its decoded pixels for on-screen display.
type Raster struct {
	PNG   []byte
	Image image.Image
}

// Rasterize renders fig fully in memory so a failed render never reaches disk.
func Rasterize(r Renderer, fig *Figure) (*Raster, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, fig); err != nil {
		return nil, fmt.Errorf("%s render: %w", r.Name(), err)
	}
	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("%s decode: %w", r.Name(), err)
	}
	return &Raster{PNG: buf.Bytes(), Image: img}, nil
}

// Annotate stamps text on the image and re-encodes the PNG.
func (r *Raster) Annotate(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	img := DrawCaption(r.Image, text)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	r.Image = img
	r.PNG = buf.Bytes()
	return nil
}
