package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	odininspect "github.com/wippyai/odin-inspect"
	"github.com/wippyai/odin-inspect/errors"
	"github.com/wippyai/odin-inspect/expect"
	"github.com/wippyai/odin-inspect/memory"
	"github.com/wippyai/odin-inspect/types"
)

// Config holds options for loading snapshots.
type Config struct {
	// BaseDir resolves relative wasm module paths. Load defaults it to the
	// directory of the snapshot file, Parse to the working directory.
	BaseDir string

	// MemoryLimitPages caps wasm linear memory in 64KB pages.
	// 0 means the wazero default.
	MemoryLimitPages uint32
}

// Variable is a named value of a snapshot.
type Variable struct {
	Type   *types.Type
	Name   string
	Expect string
	Addr   uint64
}

// Value returns the variable as an inspectable value.
func (v Variable) Value() odininspect.Value {
	return odininspect.NewValue(v.Name, v.Type, v.Addr)
}

// Snapshot is a loaded program state.
type Snapshot struct {
	target    odininspect.Target
	builder   *types.Builder
	wasm      *wasmTarget
	types     map[string]*types.Type
	byName    map[string]int
	variables []Variable
}

var arches = map[string]types.Arch{
	"":          types.AMD64,
	"amd64":     types.AMD64,
	"arm64":     types.ARM64,
	"wasm32":    types.Wasm32,
	"wasm64p32": types.Wasm64P32,
}

// Load reads and parses the snapshot file at path.
func Load(ctx context.Context, path string, cfg *Config) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read snapshot "+path, err)
	}
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	if c.BaseDir == "" {
		c.BaseDir = filepath.Dir(path)
	}
	return Parse(ctx, data, &c)
}

// Parse builds a snapshot from YAML.
func Parse(ctx context.Context, data []byte, cfg *Config) (*Snapshot, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.ParseFailed("snapshot", err)
	}
	return build(ctx, &f, cfg)
}

func build(ctx context.Context, f *File, cfg *Config) (*Snapshot, error) {
	arch, ok := arches[strings.ToLower(f.Arch)]
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseLoad, "unknown arch "+f.Arch)
	}

	s := &Snapshot{
		builder: types.NewBuilder(arch),
		types:   make(map[string]*types.Type),
		byName:  make(map[string]int),
	}
	r := newResolver(s.builder, f.Types)
	for name := range f.Types {
		t, err := r.named(name)
		if err != nil {
			return nil, err
		}
		s.types[name] = t
	}

	for _, decl := range f.Variables {
		if decl.Name == "" {
			return nil, errors.InvalidInput(errors.PhaseLoad, "variable without a name")
		}
		if _, dup := s.byName[decl.Name]; dup {
			return nil, errors.InvalidInput(errors.PhaseLoad, "duplicate variable "+decl.Name)
		}
		t, err := r.resolve(decl.Type)
		if err != nil {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Path(decl.Name).
				Detail("resolve type %q", decl.Type).
				Cause(err).
				Build()
		}
		s.byName[decl.Name] = len(s.variables)
		s.variables = append(s.variables, Variable{
			Name:   decl.Name,
			Type:   t,
			Addr:   decl.Addr,
			Expect: decl.Expect,
		})
	}

	var w writer
	if f.Wasm != nil {
		wt, err := loadWasm(ctx, f.Wasm, cfg)
		if err != nil {
			return nil, err
		}
		s.wasm = wt
		s.target = types.NewTarget(wt.mem)
		w = wt
	} else {
		segs := memory.NewSegments()
		s.target = types.NewTarget(segs)
		w = segmentWriter{segs}
	}

	for i, seg := range f.Memory {
		data, err := segmentBytes(seg, arch)
		if err != nil {
			s.Close(ctx)
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
				Path("memory", strconv.Itoa(i)).
				Cause(err).
				Build()
		}
		if err := w.write(seg.Addr, data); err != nil {
			s.Close(ctx)
			return nil, err
		}
	}

	Logger().Info("snapshot loaded",
		zap.String("arch", f.Arch),
		zap.Int("types", len(s.types)),
		zap.Int("segments", len(f.Memory)),
		zap.Int("variables", len(s.variables)),
		zap.Bool("wasm", s.wasm != nil))
	return s, nil
}

// writer places segment bytes into the snapshot memory.
type writer interface {
	write(addr uint64, data []byte) error
}

type segmentWriter struct {
	segs *memory.Segments
}

func (w segmentWriter) write(addr uint64, data []byte) error {
	return w.segs.Map(addr, data)
}

func segmentBytes(seg SegmentDecl, arch types.Arch) ([]byte, error) {
	var (
		out []byte
		set int
	)
	if seg.Bytes != "" {
		set++
		b, err := hex.DecodeString(strings.Join(strings.Fields(seg.Bytes), ""))
		if err != nil {
			return nil, errors.ParseFailed("hex bytes", err)
		}
		out = b
	}
	if seg.Text != "" {
		set++
		out = []byte(seg.Text)
	}
	if seg.U16 != nil {
		set++
		out = nil
		for _, v := range seg.U16 {
			out = binary.LittleEndian.AppendUint16(out, v)
		}
	}
	if seg.U32 != nil {
		set++
		out = nil
		for _, v := range seg.U32 {
			out = binary.LittleEndian.AppendUint32(out, v)
		}
	}
	if seg.U64 != nil {
		set++
		out = nil
		for _, v := range seg.U64 {
			out = binary.LittleEndian.AppendUint64(out, v)
		}
	}
	if seg.Words != nil {
		set++
		out = nil
		for _, v := range seg.Words {
			if arch.PtrSize == 4 {
				out = binary.LittleEndian.AppendUint32(out, uint32(v))
			} else {
				out = binary.LittleEndian.AppendUint64(out, v)
			}
		}
	}
	if seg.Zero > 0 {
		set++
		out = make([]byte, seg.Zero)
	}
	if set != 1 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "set exactly one of bytes, text, u16, u32, u64, words and zero")
	}
	return out, nil
}

// Target returns the memory and array types of the snapshot.
func (s *Snapshot) Target() odininspect.Target { return s.target }

// Builder returns the type builder for the snapshot's architecture.
func (s *Snapshot) Builder() *types.Builder { return s.builder }

// Variables returns the variables in file order.
func (s *Snapshot) Variables() []Variable {
	out := make([]Variable, len(s.variables))
	copy(out, s.variables)
	return out
}

// Variable returns the variable called name.
func (s *Snapshot) Variable(name string) (Variable, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Variable{}, false
	}
	return s.variables[i], true
}

// Type returns a declared type by name.
func (s *Snapshot) Type(name string) (*types.Type, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Cases returns the expectations of all variables that declare one.
func (s *Snapshot) Cases() []expect.Case {
	var cases []expect.Case
	for _, v := range s.variables {
		if v.Expect != "" {
			cases = append(cases, expect.Case{Variable: v.Name, Expected: v.Expect})
		}
	}
	return cases
}

// Close releases the wasm runtime, if any.
func (s *Snapshot) Close(ctx context.Context) error {
	if s.wasm == nil {
		return nil
	}
	return s.wasm.close(ctx)
}
