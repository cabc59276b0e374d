// Package media loads the picture the grid is laid over.
//
// Only still images are decoded. Video files are recognised so the
// application can say what was opened, but they carry no frame and the
// compositor draws the grid alone.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
)

// Kind is the media category.
type Kind int

const (
	KindNone Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrUnsupported is returned for files that are neither image nor video,
// and for images no registered decoder understands.
var ErrUnsupported = errors.New("unsupported media")

// sniffLen covers every signature filetype knows about.
const sniffLen = 262

// Media is a loaded file. The zero value is "no media".
type Media struct {
	Kind   Kind
	Path   string
	MIME   string
	Width  int // natural size; 0 for video
	Height int
	Image  image.Image // nil unless Kind is KindImage
}

// None is the empty media value.
var None = &Media{}

// Drawable reports whether m has pixels to draw.
func (m *Media) Drawable() bool {
	return m != nil && m.Kind == KindImage && m.Image != nil
}

// Name is the base name of the source file.
func (m *Media) Name() string {
	if m == nil || m.Path == "" {
		return ""
	}
	return filepath.Base(m.Path)
}

func (m *Media) String() string {
	if m == nil || m.Kind == KindNone {
		return "no media"
	}
	if m.Kind == KindVideo {
		return fmt.Sprintf("%s (%s, no preview)", m.Name(), m.MIME)
	}
	return fmt.Sprintf("%s (%s, %dx%d)", m.Name(), m.MIME, m.Width, m.Height)
}

// Load opens path and decodes it.
func Load(path string) (*Media, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	m.Path = path
	return m, nil
}

// Decode sniffs the stream's type from its header and decodes images.
func Decode(r io.Reader) (*Media, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrUnsupported)
		}
		return nil, fmt.Errorf("read media header: %w", err)
	}
	head = head[:n]

	kind, typ := Sniff(head)
	switch kind {
	case KindVideo:
		return &Media{Kind: KindVideo, MIME: typ.MIME.Value}, nil
	case KindImage:
	default:
		return nil, ErrUnsupported
	}

	img, _, err := image.Decode(io.MultiReader(bytes.NewReader(head), r))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnsupported, typ.MIME.Value, err)
	}
	b := img.Bounds()
	return &Media{
		Kind:   KindImage,
		MIME:   typ.MIME.Value,
		Width:  b.Dx(),
		Height: b.Dy(),
		Image:  img,
	}, nil
}

// Sniff classifies a file header.
func Sniff(head []byte) (Kind, types.Type) {
	typ, err := filetype.Match(head)
	if err != nil || typ == filetype.Unknown {
		return KindNone, filetype.Unknown
	}
	switch {
	case filetype.IsImage(head):
		return KindImage, typ
	case filetype.IsVideo(head):
		return KindVideo, typ
	}
	return KindNone, typ
}

// Extensions lists the file extensions offered by the open dialog.
func Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff", ".mp4", ".webm", ".mov", ".mkv"}
}
