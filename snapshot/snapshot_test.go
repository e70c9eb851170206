package snapshot

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/odin-inspect/errors"
	"github.com/wippyai/odin-inspect/expect"
	"github.com/wippyai/odin-inspect/inspect"
)

const programYAML = `
arch: amd64
types:
  main::Point:
    struct:
      - {name: x, type: i32}
      - {name: y, type: i32}
  main::Shape:
    union: [main::Point, f32]
    nilable: true
  main::Handler:
    proc: {convention: odin, params: ["^main::Point"], result: bool}
  main::Header:
    size: 16
    struct:
      - {name: magic, type: u32, offset: 0}
      - {name: count, type: u64, offset: 8}
memory:
  - addr: 0x1000
    u64: [1, 2, 3]
  - addr: 0x1100
    text: hello
  - addr: 0x1200
    u32: [7, 9]
  - addr: 0x2000
    words: [0x1000, 3, 0x1100, 5, 0x1200, 0]
  - addr: 0x2030
    u32: [7, 9]
  - addr: 0x2038
    words: [1, 0x401000]
  - addr: 0x2060
    bytes: "4f 44 49 4e 00 00 00 00 02 00 00 00 00 00 00 00"
  - addr: 0x2070
    zero: 32
variables:
  - {name: xs, type: "[]int", addr: 0x2000, expect: "[3]{1, 2, 3}"}
  - {name: s, type: string, addr: 0x2010, expect: '"hello"'}
  - {name: p, type: "^main::Point", addr: 0x2020, expect: "&{7, 9}"}
  - {name: nothing, type: "^int", addr: 0x2028, expect: nil}
  - {name: shape, type: main::Shape, addr: 0x2030, expect: "main.Point({7, 9})"}
  - {name: cb, type: main::Handler, addr: 0x2040, expect: 'proc "odin" (^main.Point) -> bool'}
  - {name: raw, type: rawptr, addr: 0x2040, expect: "rawptr(%PTR%)"}
  - {name: hdr, type: main::Header, addr: 0x2060, expect: "{1313424463, 2}"}
  - {name: empty, type: "map[string]int", addr: 0x2070, expect: "map[0]{}"}
  - {name: pair, type: "[2]u32", addr: 0x1200}
`

func TestParse_Program(t *testing.T) {
	ctx := context.Background()
	s, err := Parse(ctx, []byte(programYAML), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer s.Close(ctx)

	ins := inspect.New(s.Target(), nil)
	render := func(name string) (string, error) {
		v, ok := s.Variable(name)
		if !ok {
			return "", errors.NotFound(errors.PhaseCheck, "variable", name)
		}
		return ins.Text(v.Value()), nil
	}

	if err := expect.Check(s.Cases(), render); err != nil {
		t.Fatal(err)
	}
	if len(s.Cases()) != 9 {
		t.Errorf("len(Cases) = %d, want 9", len(s.Cases()))
	}
	if got, _ := render("pair"); got != "[2]{7, 9}" {
		t.Errorf("pair = %q", got)
	}

	var names []string
	for _, v := range s.Variables() {
		names = append(names, v.Name)
	}
	want := []string{"xs", "s", "p", "nothing", "shape", "cb", "raw", "hdr", "empty", "pair"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("variables (-want +got):\n%s", diff)
	}

	if _, ok := s.Type("main::Shape"); !ok {
		t.Error("main::Shape not declared")
	}
}

func TestParse_Wasm32Words(t *testing.T) {
	ctx := context.Background()
	s, err := Parse(ctx, []byte(`
arch: wasm32
memory:
  - {addr: 0x100, text: hi}
  - {addr: 0x200, words: [0x100, 2]}
variables:
  - {name: s, type: string, addr: 0x200}
`), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	v, _ := s.Variable("s")
	if got := inspect.New(s.Target(), nil).Text(v.Value()); got != `"hi"` {
		t.Errorf("Text = %q", got)
	}
	if v.Type.Size() != 8 {
		t.Errorf("wasm32 string size = %d, want 8", v.Type.Size())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		kind errors.Kind
	}{
		{"unknown arch", "arch: sparc", errors.KindInvalidInput},
		{"unknown field", "arhc: amd64", errors.KindInvalidData},
		{"unknown type", "variables: [{name: x, type: main::Nope}]", errors.KindInvalidInput},
		{"duplicate variable", "variables: [{name: x, type: int}, {name: x, type: int}]", errors.KindInvalidInput},
		{"unnamed variable", "variables: [{type: int}]", errors.KindInvalidInput},
		{"bad array length", "variables: [{name: x, type: '[n]int'}]", errors.KindInvalidInput},
		{"self reference", "types: {main::Node: {struct: [{name: next, type: '^main::Node'}]}}", errors.KindInvalidInput},
		{"two kinds", "types: {T: {alias: int, union: [int]}}", errors.KindInvalidInput},
		{"offsets without size", "types: {T: {struct: [{name: a, type: int, offset: 0}]}}", errors.KindInvalidInput},
		{"mixed offsets", "types: {T: {size: 16, struct: [{name: a, type: int, offset: 0}, {name: b, type: int}]}}", errors.KindInvalidInput},
		{"field past size", "types: {T: {size: 4, struct: [{name: a, type: int, offset: 0}]}}", errors.KindOutOfBounds},
		{"two contents", "memory: [{addr: 0, text: a, zero: 4}]", errors.KindInvalidData},
		{"bad hex", "memory: [{addr: 0, bytes: zz}]", errors.KindInvalidData},
		{"overlap", "memory: [{addr: 0, zero: 8}, {addr: 4, zero: 8}]", errors.KindInvalidInput},
		{"missing module", "wasm: {module: does-not-exist.wasm}", errors.KindInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(tt.yaml), &Config{BaseDir: t.TempDir()})
			if err == nil {
				t.Fatal("expected error")
			}
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != tt.kind {
				t.Errorf("error = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(s.Variables()) != 0 || len(s.Cases()) != 0 {
		t.Errorf("empty snapshot has %d variables", len(s.Variables()))
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.yaml")
	if err := os.WriteFile(path, []byte(programYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := s.Variable("xs"); !ok {
		t.Error("variable xs missing")
	}

	_, err = Load(context.Background(), filepath.Join(dir, "missing.yaml"), nil)
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("Load(missing) error = %v", err)
	}
}
