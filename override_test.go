package chartwise

import (
	"image/color"
	"testing"

	"git.sr.ht/~whereswaldon/chartwise/entry"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func TestOverrideWhereNeedsValues(t *testing.T) {
	if _, err := OverrideWhere(func(entry.Entry) bool { return true }, nil, nil, nil); err == nil {
		t.Error("expected a configuration error when no override values are supplied")
	}
	if _, err := OverrideWhere(func(entry.Entry) bool { return true }, &red, nil, nil); err != nil {
		t.Errorf("one supplied value should be enough, got %v", err)
	}
}

func TestResolveSharesCachedStyle(t *testing.T) {
	o, err := OverrideWhere(func(e entry.Entry) bool { return e.X == 2 }, &red, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	def := NewColumnStyle(color.NRGBA{B: 0xff, A: 0xff})
	var cache overrideCache

	first := cache.resolve(o, def, entry.Pt(2, 1))
	second := cache.resolve(o, def, entry.Pt(2, 9))
	if first == def {
		t.Fatal("matching entry should not receive the default style")
	}
	if first.Fill != red {
		t.Errorf("override should substitute the fill, got %v", first.Fill)
	}
	if first.Thickness != def.Thickness {
		t.Errorf("non-overridden fields should copy from the default, got %v", first.Thickness)
	}
	if first != second {
		t.Error("two matching entries in one frame should share the cached style instance")
	}
	if got := cache.resolve(o, def, entry.Pt(3, 1)); got != def {
		t.Error("non-matching entry should receive the default style unchanged")
	}
}

func TestResolveNilOverrider(t *testing.T) {
	def := NewColumnStyle(red)
	var cache overrideCache
	if got := cache.resolve(nil, def, entry.Pt(0, 0)); got != def {
		t.Error("nil overrider should leave the default untouched")
	}
	if got := cache.resolve(NoOverride{}, def, entry.Pt(0, 0)); got != def {
		t.Error("NoOverride should leave the default untouched")
	}
	if len(cache.built) != 0 {
		t.Error("no styles should be cached when nothing overrides")
	}
}

func TestPruneEvictsUnusedKeys(t *testing.T) {
	blue := color.NRGBA{B: 0xff, A: 0xff}
	o, err := OverrideWhere(func(e entry.Entry) bool { return e.X == 2 }, &red, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	def := NewColumnStyle(blue)
	var cache overrideCache

	// Frame N uses the key.
	cache.resolve(o, def, entry.Pt(2, 1))
	cache.prune()
	if len(cache.built) != 1 {
		t.Fatalf("key used this frame should survive the prune, cache has %d entries", len(cache.built))
	}

	// Frame N+1 never produces the key.
	cache.resolve(o, def, entry.Pt(3, 1))
	cache.prune()
	if len(cache.built) != 0 {
		t.Errorf("unused key should be evicted after the frame, cache has %d entries", len(cache.built))
	}
}

func TestResolveShaderOverride(t *testing.T) {
	shader := VerticalShader(red, color.NRGBA{A: 0xff})
	o, err := OverrideWhere(func(e entry.Entry) bool { return e.Y < 0 }, nil, shader, nil)
	if err != nil {
		t.Fatal(err)
	}
	def := NewColumnStyle(color.NRGBA{G: 0xff, A: 0xff})
	var cache overrideCache
	st := cache.resolve(o, def, entry.Pt(0, -1))
	if st == def || st.Shader == nil || *st.Shader != *shader {
		t.Errorf("expected the shader to be substituted, got %+v", st.Shader)
	}
	if st.Fill != def.Fill {
		t.Error("fill should be copied from the default when only the shader overrides")
	}
}
