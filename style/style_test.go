package style

import (
	"errors"
	"testing"
)

func TestFromPackedExtremes(t *testing.T) {
	white := FromPacked(0xffffffff)
	if white != (Color{R: 1, G: 1, B: 1, A: 1}) {
		t.Fatalf("0xffffffff decoded to %+v", white)
	}
	black := FromPacked(0x00000000)
	if black != (Color{}) {
		t.Fatalf("0x00000000 decoded to %+v", black)
	}
}

func TestFromPackedChannelOrder(t *testing.T) {
	c := FromPacked(0xff000080)
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Fatalf("expected pure red, got %+v", c)
	}
	if c.A < 0.5 || c.A > 0.51 {
		t.Fatalf("expected alpha ~0.5, got %v", c.A)
	}
}

func TestPackedRoundTrip(t *testing.T) {
	for _, u := range []uint32{
		0x00000000, 0xffffffff, 0x282828ff, 0x3c3836ff, 0xebdbb2ff,
		0xb16286ff, 0x458588ff, 0xcc241dff, 0x01020304, 0x7f807f80,
	} {
		if got := FromPacked(u).Packed(); got != u {
			t.Errorf("round trip 0x%08x: got 0x%08x", u, got)
		}
	}
	// Every single-channel value survives the trip.
	for i := uint32(0); i < 256; i++ {
		u := i<<24 | (255-i)<<16 | i<<8 | 0xff
		if got := FromPacked(u).Packed(); got != u {
			t.Fatalf("round trip 0x%08x: got 0x%08x", u, got)
		}
	}
}

func TestChannelsInRange(t *testing.T) {
	for _, u := range []uint32{0, 0x80808080, 0xffffffff, 0x12345678} {
		c := FromPacked(u)
		for _, ch := range []float64{c.R, c.G, c.B, c.A} {
			if ch < 0 || ch > 1 {
				t.Fatalf("0x%08x: channel %v out of range", u, ch)
			}
		}
	}
}

func TestRGBAImplementsImageColor(t *testing.T) {
	r, g, b, a := FromPacked(0xffffffff).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Fatalf("white RGBA = %x %x %x %x", r, g, b, a)
	}
	_, _, _, a = FromPacked(0xffffff00).RGBA()
	if a != 0 {
		t.Fatalf("transparent alpha = %x", a)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
		err  bool
	}{
		{in: "#458588", want: 0x458588ff},
		{in: "#45858880", want: 0x45858880},
		{in: "0xebdbb2ff", want: 0xebdbb2ff},
		{in: " #000000 ", want: 0x000000ff},
		{in: "458588", err: true},
		{in: "#4585", err: true},
		{in: "#zzzzzz", err: true},
	}
	for _, tc := range tests {
		c, err := ParseHex(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("ParseHex(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tc.in, err)
			continue
		}
		if c.Packed() != tc.want {
			t.Errorf("ParseHex(%q) = %s, want 0x%08x", tc.in, c, tc.want)
		}
	}
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1, -11} {
		_, err := New("mono", size, Color{}, nil, Padding{})
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("size %d: expected ErrInvalidSize, got %v", size, err)
		}
	}
}

func TestNewAcceptsAnyFontName(t *testing.T) {
	bg := FromPacked(0x282828ff)
	for _, font := range []string{"mono", "", "No Such Font"} {
		s, err := New(font, 11, FromPacked(0xebdbb2ff), &bg, Padding{H: 2, V: 2})
		if err != nil {
			t.Fatalf("font %q: %v", font, err)
		}
		if s.Font() != font || s.Size() != 11 {
			t.Fatalf("unexpected style %+v", s)
		}
		got, ok := s.Background()
		if !ok || got != bg {
			t.Fatalf("background = %v, %v", got, ok)
		}
		if s.Padding() != (Padding{H: 2, V: 2}) {
			t.Fatalf("padding = %+v", s.Padding())
		}
	}
}

func TestNewWithoutBackground(t *testing.T) {
	s, err := New("mono", 11, FromPacked(0xffffffff), nil, Padding{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Background(); ok {
		t.Fatal("expected no background")
	}
}
