package inspect

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	inspecterrors "github.com/wippyai/odin-inspect/errors"
	"github.com/wippyai/odin-inspect/types"
)

const tombstone = uint64(1) << 63

// mapFixture lays out a map[int]int of capacity 8 at 0x10000 with its header
// at 0x2000: keys at 0x10000, values at 0x10040, hashes at 0x10080.
func mapFixture(t *testing.T, length uint64, hashes map[uint64]uint64) (*fixture, Value) {
	f := newFixture(t, nil)
	if _, err := f.mem.Alloc(0x10000, 0xc0); err != nil {
		t.Fatal(err)
	}
	for slot, hash := range hashes {
		put(t, f, 0x10000+slot*8, 10*slot)
		put(t, f, 0x10040+slot*8, 100*slot)
		put(t, f, 0x10080+slot*8, hash)
	}
	f.words(0x2000, 0x10000|3, length, 0, 0)
	integer := f.b.MustScalar("int")
	return f, f.value("m", f.b.Map(integer, integer), 0x2000)
}

func put(t *testing.T, f *fixture, addr, v uint64) {
	t.Helper()
	if err := f.mem.PutUnsigned(addr, 8, v); err != nil {
		t.Fatalf("PutUnsigned(0x%x) failed: %v", addr, err)
	}
}

func TestMap_Children(t *testing.T) {
	f, v := mapFixture(t, 3, map[uint64]uint64{
		1: 0x1111,
		2: tombstone | 0x2222,
		4: 0x4444,
		6: 0x6666,
	})

	c := f.ins.Children(v)
	if got := c.NumChildren(); got != 7 {
		t.Fatalf("NumChildren = %d, want 7", got)
	}

	wantNames := []string{"[1]", "[1]", "[4]", "[4]", "[6]", "[6]", "cap"}
	if diff := cmp.Diff(wantNames, childNames(f.ins, v)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	var texts []string
	for i := 0; i < c.NumChildren(); i++ {
		texts = append(texts, f.ins.Text(c.ChildAt(i)))
	}
	if diff := cmp.Diff([]string{"10", "100", "40", "400", "60", "600", "8"}, texts); diff != "" {
		t.Errorf("child text mismatch (-want +got):\n%s", diff)
	}

	capacity, err := c.ChildAt(6).Unsigned(f.mem)
	if err != nil || capacity != 8 {
		t.Errorf("cap = %d, %v; want 8", capacity, err)
	}

	want := "map[3]{10 = 100, 40 = 400, 60 = 600}"
	if got := f.ins.Text(v); got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestMap_LenBoundsChildCount(t *testing.T) {
	f, v := mapFixture(t, 2, map[uint64]uint64{0: 1, 3: 2, 7: 3})

	if diff := cmp.Diff([]string{"[0]", "[0]", "[3]", "[3]", "cap"}, childNames(f.ins, v)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_CorruptLength(t *testing.T) {
	for _, length := range []uint64{1 << 62, 1<<63 - 1} {
		f, v := mapFixture(t, length, map[uint64]uint64{1: 0x1111})

		c := f.ins.Children(v)
		if n := c.NumChildren(); n != 0 || c.HasChildren() {
			t.Errorf("len %d: NumChildren = %d, want 0", length, n)
		}
		got := f.ins.Text(v)
		if !strings.Contains(got, "layout_mismatch") || !strings.Contains(got, "m.len") {
			t.Errorf("len %d: Text = %q, want a layout_mismatch diagnostic at m.len", length, got)
		}
	}
}

func TestMap_Empty(t *testing.T) {
	f := newFixture(t, nil)
	f.words(0x2000, 0, 0, 0, 0)
	integer := f.b.MustScalar("int")
	v := f.value("m", f.b.Map(integer, f.b.String()), 0x2000)

	if got := f.ins.Text(v); got != "map[0]{}" {
		t.Errorf("Text = %q, want map[0]{}", got)
	}

	c := f.ins.Children(v)
	if c.NumChildren() != 1 {
		t.Fatalf("NumChildren = %d, want 1", c.NumChildren())
	}
	capChild := c.ChildAt(0)
	if capChild.Name() != "cap" || f.ins.Text(capChild) != "0" {
		t.Errorf("cap child = %s %q", capChild.Name(), f.ins.Text(capChild))
	}
	if f.mem.reads != 0 {
		t.Errorf("ReadMemory called %d times, want 0", f.mem.reads)
	}
}

func TestMap_PackedStringKeys(t *testing.T) {
	f := newFixture(t, nil)
	// Four 16-byte strings per key cell: two key cells, then one value cell.
	if _, err := f.mem.Alloc(0x10000, 0x100); err != nil {
		t.Fatal(err)
	}
	f.bytes(0x30000, []byte("k"))
	put(t, f, 0x10000+64+16, 0x30000)
	put(t, f, 0x10000+64+16+8, 1)
	put(t, f, 0x10080+5*8, 42)
	put(t, f, 0x100c0+5*8, 0xabc)
	f.words(0x2000, 0x10000|3, 1, 0, 0)

	v := f.value("m", f.b.Map(f.b.String(), f.b.MustScalar("int")), 0x2000)

	if got := f.ins.Text(v); got != `map[1]{"k" = 42}` {
		t.Errorf("Text = %q", got)
	}
	if diff := cmp.Diff([]string{"[5]", "[5]", "cap"}, childNames(f.ins, v)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_NonPowerOfTwoCells(t *testing.T) {
	f := newFixture(t, nil)
	i32 := f.b.MustScalar("i32")
	vec := types.Struct("main::Vec5",
		types.M("a", i32), types.M("b", i32), types.M("c", i32), types.M("d", i32), types.M("e", i32))

	// Three 20-byte values per 64-byte cell, so slot 4 is element 1 of cell 1.
	const valueBase = 0x10040
	const hashBase = valueBase + 2*64 + 2*20
	if _, err := f.mem.Alloc(0x10000, 0x200); err != nil {
		t.Fatal(err)
	}
	put(t, f, 0x10000+4*8, 4)
	f.words32(0x20000, 1, 2, 3, 4, 5)
	data, _ := f.mem.ReadMemory(0x20000, 20)
	if err := f.mem.Write(valueBase+64+20, data); err != nil {
		t.Fatal(err)
	}
	put(t, f, hashBase+4*8, 0x99)
	f.words(0x2000, 0x10000|3, 1, 0, 0)

	v := f.value("m", f.b.Map(f.b.MustScalar("int"), vec), 0x2000)
	if got := f.ins.Text(v); got != "map[1]{4 = {1, 2, 3, 4, 5}}" {
		t.Errorf("Text = %q", got)
	}
}

func TestMap_UnreadableHashSlots(t *testing.T) {
	f := newFixture(t, nil)
	// Key and value cells only; the hash slots are unmapped.
	if _, err := f.mem.Alloc(0x10000, 0x80); err != nil {
		t.Fatal(err)
	}
	f.words(0x2000, 0x10000|3, 1, 0, 0)
	integer := f.b.MustScalar("int")
	v := f.value("m", f.b.Map(integer, integer), 0x2000)

	c := f.ins.Children(v)
	if c.NumChildren() != 3 {
		t.Fatalf("NumChildren = %d, want 3", c.NumChildren())
	}
	key := c.ChildAt(0)
	notFound := &inspecterrors.Error{Phase: inspecterrors.PhaseDecode, Kind: inspecterrors.KindNotFound}
	if !errors.Is(key.Err(), notFound) {
		t.Errorf("key error = %v, want not_found", key.Err())
	}
	if got := f.ins.Text(key); !strings.HasPrefix(got, "<error: ") {
		t.Errorf("key text = %q, want a diagnostic", got)
	}
	if got := f.ins.Text(c.ChildAt(2)); got != "8" {
		t.Errorf("cap = %q, want 8", got)
	}
}

func TestMap_HashWidthMismatch(t *testing.T) {
	f := newFixtureArch(t, types.Wasm32, nil)
	f.words32(0x2000, 0x1000|3, 1, 0, 0)
	integer := f.b.MustScalar("int")
	v := f.value("m", f.b.Map(integer, integer), 0x2000)

	if got := f.ins.Text(v); !strings.Contains(got, "layout_mismatch") {
		t.Errorf("Text = %q, want a layout_mismatch diagnostic", got)
	}
	if n := f.ins.Children(v).NumChildren(); n != 0 {
		t.Errorf("NumChildren = %d, want 0", n)
	}
}
