package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"

	"github.com/benedict-anokye-davies/glance/internal/models"
	"github.com/benedict-anokye-davies/glance/pkg/window"
)

// X11Source captures via the X server's GetImage request over an xgb
// connection, with xinerama for multi-monitor enumeration.
type X11Source struct {
	conn        *xgb.Conn
	root        xproto.Window
	rootBounds  window.Bounds
	hasXinerama bool
}

// NewX11Source connects to the X server.
func NewX11Source() (*X11Source, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	s := &X11Source{
		conn: conn,
		root: screen.Root,
		rootBounds: window.Bounds{
			Width:  int(screen.WidthInPixels),
			Height: int(screen.HeightInPixels),
		},
	}

	if err := xinerama.Init(conn); err == nil {
		s.hasXinerama = true
	}

	return s, nil
}

// Displays enumerates xinerama screens; without xinerama the root
// geometry is reported as a single primary display.
func (s *X11Source) Displays() ([]Display, error) {
	if !s.hasXinerama {
		return []Display{{ID: "0", Primary: true, Bounds: s.rootBounds}}, nil
	}

	reply, err := xinerama.QueryScreens(s.conn).Reply()
	if err != nil || len(reply.ScreenInfo) == 0 {
		return []Display{{ID: "0", Primary: true, Bounds: s.rootBounds}}, nil
	}

	displays := make([]Display, 0, len(reply.ScreenInfo))
	for i, info := range reply.ScreenInfo {
		displays = append(displays, Display{
			ID:      fmt.Sprintf("%d", i),
			Primary: i == 0,
			Bounds: window.Bounds{
				X:      int(info.XOrg),
				Y:      int(info.YOrg),
				Width:  int(info.Width),
				Height: int(info.Height),
			},
		})
	}
	return displays, nil
}

// Capture grabs the display's pixels from the root window.
func (s *X11Source) Capture(d Display, format models.CaptureFormat, quality int) ([]byte, error) {
	b := d.Bounds
	if b.Width <= 0 || b.Height <= 0 {
		return nil, fmt.Errorf("display %s has empty bounds", d.ID)
	}

	reply, err := xproto.GetImage(
		s.conn,
		xproto.ImageFormatZPixmap,
		xproto.Drawable(s.root),
		int16(b.X), int16(b.Y),
		uint16(b.Width), uint16(b.Height),
		0xffffffff,
	).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11 GetImage failed: %w", err)
	}

	img := bgrxToRGBA(reply.Data, b.Width, b.Height)
	return Encode(img, format, quality)
}

// bgrxToRGBA converts the server's 32-bit ZPixmap data (BGRX byte order)
// into an RGBA image.
func bgrxToRGBA(data []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	n := width * height
	if len(data) < n*4 {
		n = len(data) / 4
	}
	for i := 0; i < n; i++ {
		img.Pix[i*4+0] = data[i*4+2]
		img.Pix[i*4+1] = data[i*4+1]
		img.Pix[i*4+2] = data[i*4+0]
		img.Pix[i*4+3] = 0xff
	}
	return img
}

// Close disconnects from the X server.
func (s *X11Source) Close() error {
	s.conn.Close()
	return nil
}
