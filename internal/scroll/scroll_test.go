package scroll

import "testing"

func TestRecomputeBounds(t *testing.T) {
	cases := []struct {
		name    string
		length  int64
		wantMax int64
	}{
		{"empty", 0, 0},
		{"one byte short of a screenful", 16*8 - 1, 0},
		{"exactly one screenful", 16 * 8, 1},
		{"one extra line", 16 * 9, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctl := New(16, 8)
			ctl.Recompute(c.length)
			if ctl.Max() != c.wantMax {
				t.Errorf("length %d: max = %d, want %d", c.length, ctl.Max(), c.wantMax)
			}
		})
	}
}

func TestRecomputeShrinkPullsViewUp(t *testing.T) {
	ctl := New(16, 8)
	ctl.Recompute(16 * 100)
	ctl.ScrollToLine(ctl.Max())
	bottom := ctl.Pos()

	ctl.Recompute(16 * 99)
	if ctl.Pos() != bottom-1 {
		t.Errorf("expected position %d after shrink, got %d", bottom-1, ctl.Pos())
	}
	if ctl.Pos() > ctl.Max() {
		t.Error("position left outside bounds after shrink")
	}
}

func TestScrollClamping(t *testing.T) {
	ctl := New(16, 8)
	ctl.Recompute(16 * 20)

	ctl.ScrollToLine(-5)
	if ctl.Pos() != 0 {
		t.Errorf("expected 0, got %d", ctl.Pos())
	}
	ctl.ScrollLines(1000)
	if ctl.Pos() != ctl.Max() {
		t.Errorf("expected max %d, got %d", ctl.Max(), ctl.Pos())
	}
}

func TestVisibleByteWindow(t *testing.T) {
	ctl := New(16, 8)
	ctl.Recompute(16 * 20)
	ctl.ScrollToLine(2)

	if got := ctl.FirstVisibleByte(); got != 32 {
		t.Errorf("first visible = %d, want 32", got)
	}
	if got := ctl.LastVisibleByte(16 * 20); got != 32+16*8-1 {
		t.Errorf("last visible = %d, want %d", got, 32+16*8-1)
	}
	// A short store caps the window at end of data.
	ctl.ScrollToLine(0)
	if got := ctl.LastVisibleByte(10); got != 9 {
		t.Errorf("last visible = %d, want 9", got)
	}
}

func TestByteIntoView(t *testing.T) {
	length := int64(16 * 100)
	ctl := New(16, 8)
	ctl.Recompute(length)

	// Below the window: offset's line becomes the last visible line.
	ctl.ByteIntoView(16*50, length)
	if ctl.Pos() != 50-8+1 {
		t.Errorf("expected top line %d, got %d", 50-8+1, ctl.Pos())
	}

	// Already visible: no movement.
	pos := ctl.Pos()
	ctl.ByteIntoView(16*48, length)
	if ctl.Pos() != pos {
		t.Errorf("visible offset moved the view to %d", ctl.Pos())
	}

	// Above the window: offset's line becomes the top line.
	ctl.ByteIntoView(16*10, length)
	if ctl.Pos() != 10 {
		t.Errorf("expected top line 10, got %d", ctl.Pos())
	}
}

func TestNativeIdentityForSmallRanges(t *testing.T) {
	ctl := New(16, 8)
	ctl.Recompute(16 * 100)
	ctl.ScrollToLine(42)

	if ctl.NativePos() != 42 {
		t.Errorf("expected identity mapping, got %d", ctl.NativePos())
	}
	ctl.SetFromNative(17)
	if ctl.Pos() != 17 {
		t.Errorf("expected 17, got %d", ctl.Pos())
	}
}

func TestNativeProportionalForHugeRanges(t *testing.T) {
	ctl := New(16, 8)
	// ~16 million lines, far past the 16-bit native range.
	ctl.Recompute(16 * 16_000_000)

	ctl.ScrollToLine(ctl.Max() / 2)
	native := ctl.NativePos()
	if native < NativeMax/2-1 || native > NativeMax/2+1 {
		t.Errorf("midpoint mapped to %d, want about %d", native, NativeMax/2)
	}

	ctl.SetFromNative(native)
	half := ctl.Max() / 2
	diff := ctl.Pos() - half
	if diff < 0 {
		diff = -diff
	}
	if diff > ctl.Max()/1000 {
		t.Errorf("reconstruction drifted: pos %d vs %d", ctl.Pos(), half)
	}
}

func TestNativeEndSnapReachesLastLine(t *testing.T) {
	ctl := New(16, 8)
	ctl.Recompute(16 * 16_000_000)

	// A thumb drag that rounds just short of the native maximum must
	// still land on the true last line.
	ctl.SetFromNative(NativeMax - 9)
	if ctl.Pos() != ctl.Max() {
		t.Errorf("expected max %d, got %d", ctl.Max(), ctl.Pos())
	}
	ctl.SetFromNative(NativeMax)
	if ctl.Pos() != ctl.Max() {
		t.Errorf("expected max %d, got %d", ctl.Max(), ctl.Pos())
	}
}
