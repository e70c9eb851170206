package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/odin-inspect/errors"
	"github.com/wippyai/odin-inspect/memory"
)

const (
	defaultMemoryExport = "memory"
	reactorInitializer  = "_initialize"
)

// wasmTarget is an instantiated module whose linear memory is inspected.
type wasmTarget struct {
	runtime wazero.Runtime
	raw     api.Memory
	mem     *memory.Wasm
}

func loadWasm(ctx context.Context, decl *WasmDecl, cfg *Config) (*wasmTarget, error) {
	if decl.Module == "" {
		return nil, errors.InvalidInput(errors.PhaseLoad, "wasm module path is empty")
	}
	path := decl.Module
	if !filepath.IsAbs(path) && cfg.BaseDir != "" {
		path = filepath.Join(cfg.BaseDir, path)
	}
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read wasm module "+path, err)
	}
	return instantiate(ctx, bin, decl, cfg)
}

func instantiate(ctx context.Context, bin []byte, decl *WasmDecl, cfg *Config) (*wasmTarget, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	w, err := setup(ctx, rt, bin, decl)
	if err != nil {
		rt.Close(ctx)
		return nil, err
	}
	return w, nil
}

func setup(ctx context.Context, rt wazero.Runtime, bin []byte, decl *WasmDecl) (*wasmTarget, error) {
	compiled, err := rt.CompileModule(ctx, bin)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, "compile wasm module")
	}

	if importsWASI(compiled) {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
			return nil, errors.Load("instantiate WASI", err)
		}
	}

	// Start functions are skipped: a command's _start exits and closes the module.
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithStartFunctions())
	if err != nil {
		return nil, errors.Load("instantiate wasm module", err)
	}

	calls := decl.Call
	if mod.ExportedFunction(reactorInitializer) != nil {
		calls = append([]string{reactorInitializer}, calls...)
	}
	for _, name := range calls {
		fn := mod.ExportedFunction(name)
		if fn == nil {
			return nil, errors.NotFound(errors.PhaseLoad, "wasm export", name)
		}
		Logger().Debug("calling wasm export", zap.String("name", name))
		if _, err := fn.Call(ctx); err != nil {
			return nil, errors.Load("call wasm export "+name, err)
		}
	}

	memName := decl.Memory
	if memName == "" {
		memName = defaultMemoryExport
	}
	raw := mod.ExportedMemory(memName)
	if raw == nil {
		return nil, errors.NotFound(errors.PhaseLoad, "wasm memory export", memName)
	}

	Logger().Debug("wasm module ready",
		zap.String("memory", memName),
		zap.Uint32("size", raw.Size()),
		zap.Strings("called", calls))
	return &wasmTarget{runtime: rt, raw: raw, mem: memory.Wrap(raw)}, nil
}

func importsWASI(compiled wazero.CompiledModule) bool {
	for _, f := range compiled.ImportedFunctions() {
		if module, _, ok := f.Import(); ok && module == wasi_snapshot_preview1.ModuleName {
			return true
		}
	}
	return false
}

func (w *wasmTarget) write(addr uint64, data []byte) error {
	if addr+uint64(len(data)) > 1<<32 || !w.raw.Write(uint32(addr), data) {
		return errors.New(errors.PhaseLoad, errors.KindOutOfBounds).
			Detail("write %d bytes at 0x%x outside linear memory of %d bytes", len(data), addr, w.raw.Size()).
			Build()
	}
	return nil
}

func (w *wasmTarget) close(ctx context.Context) error {
	return w.runtime.Close(ctx)
}
