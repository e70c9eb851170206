package inspect

import (
	"encoding/binary"
	"testing"

	odininspect "github.com/wippyai/odin-inspect"
	"github.com/wippyai/odin-inspect/memory"
	"github.com/wippyai/odin-inspect/types"
)

// countingMemory records how often the target was read.
type countingMemory struct {
	*memory.Segments
	reads    int
	unsigned int
}

func (m *countingMemory) ReadMemory(addr, length uint64) ([]byte, error) {
	m.reads++
	return m.Segments.ReadMemory(addr, length)
}

func (m *countingMemory) ReadUnsigned(addr uint64, width int) (uint64, error) {
	m.unsigned++
	return m.Segments.ReadUnsigned(addr, width)
}

type fixture struct {
	t   *testing.T
	b   *types.Builder
	mem *countingMemory
	ins *Inspector
}

func newFixture(t *testing.T, cfg *Config) *fixture {
	return newFixtureArch(t, types.AMD64, cfg)
}

func newFixtureArch(t *testing.T, arch types.Arch, cfg *Config) *fixture {
	t.Helper()
	mem := &countingMemory{Segments: memory.NewSegments()}
	return &fixture{
		t:   t,
		b:   types.NewBuilder(arch),
		mem: mem,
		ins: New(types.NewTarget(mem), cfg),
	}
}

// words maps little-endian 64-bit words at addr.
func (f *fixture) words(addr uint64, ws ...uint64) {
	f.t.Helper()
	data := make([]byte, 8*len(ws))
	for i, w := range ws {
		binary.LittleEndian.PutUint64(data[i*8:], w)
	}
	f.bytes(addr, data)
}

// words32 maps little-endian 32-bit words at addr.
func (f *fixture) words32(addr uint64, ws ...uint32) {
	f.t.Helper()
	data := make([]byte, 4*len(ws))
	for i, w := range ws {
		binary.LittleEndian.PutUint32(data[i*4:], w)
	}
	f.bytes(addr, data)
}

func (f *fixture) bytes(addr uint64, data []byte) {
	f.t.Helper()
	if err := f.mem.Map(addr, data); err != nil {
		f.t.Fatalf("Map(0x%x) failed: %v", addr, err)
	}
}

func (f *fixture) value(name string, t *types.Type, addr uint64) Value {
	return odininspect.NewValue(name, t, addr)
}

// fakeType is a hand-written descriptor for layouts the builder does not make.
type fakeType struct {
	name   string
	fields []odininspect.Field
	size   uint64
	class  odininspect.TypeClass
}

func (t *fakeType) Name() string                   { return t.name }
func (t *fakeType) Class() odininspect.TypeClass   { return t.class }
func (t *fakeType) Size() uint64                   { return t.size }
func (t *fakeType) Encoding() odininspect.Encoding { return odininspect.EncodingNone }
func (t *fakeType) NumFields() int                 { return len(t.fields) }
func (t *fakeType) Pointee() odininspect.Type      { return nil }
func (t *fakeType) Elem() odininspect.Type         { return nil }
func (t *fakeType) Len() uint64                    { return 0 }
func (t *fakeType) Params() []odininspect.Type     { return nil }
func (t *fakeType) Result() odininspect.Type       { return nil }
func (t *fakeType) Convention() string             { return "" }

func (t *fakeType) FieldAt(i int) (odininspect.Field, bool) {
	if i < 0 || i >= len(t.fields) {
		return odininspect.Field{}, false
	}
	return t.fields[i], true
}

func (t *fakeType) FieldByName(name string) (odininspect.Field, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return odininspect.Field{}, false
}

// childNames lists the names of all children of v.
func childNames(ins *Inspector, v Value) []string {
	c := ins.Children(v)
	names := make([]string, c.NumChildren())
	for i := range names {
		names[i] = c.ChildAt(i).Name()
	}
	return names
}
