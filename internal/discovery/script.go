package discovery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"rnconfig/internal/logger"
	"rnconfig/internal/rawconfig"

	"github.com/dop251/goja"
	"github.com/evanw/esbuild/pkg/api"
)

// ErrCircular is returned when a script exports a self-referencing value.
var ErrCircular = errors.New("config contains a circular reference")

// requireExtensions is the resolution order for extensionless requires.
var requireExtensions = []string{"", ".js", ".json", ".ts", ".cjs", ".mjs", "/index.js"}

// scriptLoader executes config scripts. ES modules and TypeScript are
// compiled to CommonJS with esbuild first. Every file gets a fresh runtime.
func scriptLoader(log *logger.Logger) Loader {
	return func(ctx context.Context, path string, content []byte) (any, bool, error) {
		rt := newScriptRuntime(log)
		return rt.run(ctx, path, content)
	}
}

// scriptRuntime is one goja VM. The VM is not goroutine-safe, so the
// callables it exports share mu.
type scriptRuntime struct {
	vm    *goja.Runtime
	mu    *sync.Mutex
	log   *logger.Logger
	cache map[string]*goja.Object
}

func newScriptRuntime(log *logger.Logger) *scriptRuntime {
	rt := &scriptRuntime{
		vm:    goja.New(),
		mu:    &sync.Mutex{},
		log:   log,
		cache: map[string]*goja.Object{},
	}
	rt.installGlobals()
	return rt
}

func (rt *scriptRuntime) run(ctx context.Context, path string, content []byte) (any, bool, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		rt.vm.Interrupt(ctx.Err())
	})
	defer func() {
		stop()
		rt.vm.ClearInterrupt()
	}()

	exports, err := rt.execModule(path, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, fmt.Errorf("executing script: %w", ctxErr)
		}
		return nil, false, err
	}

	exports, err = rt.settle(rt.unwrapDefault(exports))
	if err != nil {
		return nil, false, err
	}

	value, ok, err := rt.convert(exports, map[*goja.Object]bool{})
	if err != nil {
		return nil, false, err
	}
	return value, ok, nil
}

// compile turns a script into a CommonJS function body.
func compile(path string, content []byte) (string, error) {
	loader := api.LoaderJS
	if filepath.Ext(path) == ".ts" {
		loader = api.LoaderTS
	}

	res := api.Transform(string(content), api.TransformOptions{
		Loader:     loader,
		Format:     api.FormatCommonJS,
		Target:     api.ES2017,
		Sourcefile: path,
	})
	if len(res.Errors) > 0 {
		msg := res.Errors[0]
		if msg.Location != nil {
			return "", fmt.Errorf("compiling script: %d:%d: %s", msg.Location.Line, msg.Location.Column, msg.Text)
		}
		return "", fmt.Errorf("compiling script: %s", msg.Text)
	}
	return string(res.Code), nil
}

// execModule runs one module and returns its module.exports. Modules are
// cached by path before they run, so require cycles see partial exports.
func (rt *scriptRuntime) execModule(path string, content []byte) (goja.Value, error) {
	if mod, ok := rt.cache[path]; ok {
		return mod.Get("exports"), nil
	}

	code, err := compile(path, content)
	if err != nil {
		return nil, err
	}

	wrapped := "(function (exports, require, module, __filename, __dirname) {" + code + "\n})"
	prog, err := goja.Compile(path, wrapped, false)
	if err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}

	fnValue, err := rt.vm.RunProgram(prog)
	if err != nil {
		return nil, fmt.Errorf("executing script: %w", err)
	}
	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		return nil, errors.New("executing script: module wrapper is not callable")
	}

	module := rt.vm.NewObject()
	exports := rt.vm.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return nil, err
	}
	rt.cache[path] = module

	dir := filepath.Dir(path)
	_, err = fn(goja.Undefined(),
		exports,
		rt.vm.ToValue(rt.requireFrom(dir)),
		module,
		rt.vm.ToValue(path),
		rt.vm.ToValue(dir),
	)
	if err != nil {
		delete(rt.cache, path)
		return nil, fmt.Errorf("executing script: %w", err)
	}
	return module.Get("exports"), nil
}

// requireFrom returns the require function seen by modules in dir.
func (rt *scriptRuntime) requireFrom(dir string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()

		switch name {
		case "path", "node:path":
			return rt.pathModule()
		}

		if !strings.HasPrefix(name, "./") && !strings.HasPrefix(name, "../") && !filepath.IsAbs(name) {
			panic(rt.vm.NewGoError(fmt.Errorf("cannot find module '%s'", name)))
		}

		target := name
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, filepath.FromSlash(name))
		}

		for _, ext := range requireExtensions {
			candidate := target + filepath.FromSlash(ext)
			content, err := os.ReadFile(candidate)
			if err != nil {
				continue
			}

			if filepath.Ext(candidate) == ".json" {
				return rt.parseJSON(candidate, content)
			}

			exports, err := rt.execModule(candidate, content)
			if err != nil {
				panic(rt.vm.NewGoError(err))
			}
			return exports
		}

		panic(rt.vm.NewGoError(fmt.Errorf("cannot find module '%s'", name)))
	}
}

func (rt *scriptRuntime) parseJSON(path string, content []byte) goja.Value {
	parse, ok := goja.AssertFunction(rt.vm.Get("JSON").ToObject(rt.vm).Get("parse"))
	if !ok {
		panic(rt.vm.NewGoError(errors.New("JSON.parse unavailable")))
	}
	v, err := parse(goja.Undefined(), rt.vm.ToValue(string(content)))
	if err != nil {
		panic(rt.vm.NewGoError(fmt.Errorf("parsing %s: %w", path, err)))
	}
	return v
}

func (rt *scriptRuntime) pathModule() goja.Value {
	m := rt.vm.NewObject()
	_ = m.Set("sep", string(filepath.Separator))
	_ = m.Set("join", func(parts ...string) string {
		return filepath.Join(parts...)
	})
	_ = m.Set("resolve", func(parts ...string) string {
		p, _ := os.Getwd()
		for _, part := range parts {
			if filepath.IsAbs(part) {
				p = part
				continue
			}
			p = filepath.Join(p, part)
		}
		return filepath.Clean(p)
	})
	_ = m.Set("dirname", filepath.Dir)
	_ = m.Set("extname", filepath.Ext)
	_ = m.Set("isAbsolute", filepath.IsAbs)
	_ = m.Set("basename", func(p string, ext ...string) string {
		base := filepath.Base(p)
		if len(ext) > 0 {
			base = strings.TrimSuffix(base, ext[0])
		}
		return base
	})
	return m
}

// installGlobals provides the small slice of the Node environment config
// scripts commonly touch.
func (rt *scriptRuntime) installGlobals() {
	env := rt.vm.NewObject()
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			_ = env.Set(k, v)
		}
	}

	process := rt.vm.NewObject()
	_ = process.Set("env", env)
	_ = process.Set("platform", platformName())
	_ = process.Set("cwd", func() string {
		wd, _ := os.Getwd()
		return wd
	})
	_ = rt.vm.Set("process", process)

	console := rt.vm.NewObject()
	logFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		rt.log.Debug().Str("source", "script").Msg(strings.Join(parts, " "))
		return goja.Undefined()
	}
	for _, name := range []string{"log", "info", "warn", "error", "debug"} {
		_ = console.Set(name, logFn)
	}
	_ = rt.vm.Set("console", console)
}

// unwrapDefault returns the default export of a compiled ES module.
func (rt *scriptRuntime) unwrapDefault(v goja.Value) goja.Value {
	obj, ok := v.(*goja.Object)
	if !ok {
		return v
	}
	if !obj.Get("__esModule").ToBoolean() {
		return v
	}
	def := obj.Get("default")
	if def == nil {
		return goja.Undefined()
	}
	return def
}

// settle resolves an exported promise. Job queues run when the top-level
// call returns, so a promise that does not depend on timers is settled here.
func (rt *scriptRuntime) settle(v goja.Value) (goja.Value, error) {
	if v == nil {
		return v, nil
	}
	p, ok := v.Export().(*goja.Promise)
	if !ok {
		return v, nil
	}
	switch p.State() {
	case goja.PromiseStateFulfilled:
		return p.Result(), nil
	case goja.PromiseStateRejected:
		return nil, fmt.Errorf("config promise rejected: %s", p.Result().String())
	default:
		return nil, errors.New("config promise did not settle")
	}
}

// convert turns a JS value into a config tree. The boolean is false for
// undefined, which callers omit.
func (rt *scriptRuntime) convert(v goja.Value, seen map[*goja.Object]bool) (any, bool, error) {
	if v == nil || goja.IsUndefined(v) {
		return nil, false, nil
	}
	if goja.IsNull(v) {
		return nil, true, nil
	}

	if fn, ok := goja.AssertFunction(v); ok {
		return rt.wrapFunc(fn), true, nil
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return v.Export(), true, nil
	}

	switch obj.ClassName() {
	case "Array":
		if seen[obj] {
			return nil, false, ErrCircular
		}
		seen[obj] = true
		defer delete(seen, obj)

		n := int(obj.Get("length").ToInteger())
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			item, ok, err := rt.convert(obj.Get(fmt.Sprint(i)), seen)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				item = nil
			}
			out = append(out, item)
		}
		return out, true, nil

	case "Object":
		if seen[obj] {
			return nil, false, ErrCircular
		}
		seen[obj] = true
		defer delete(seen, obj)

		out := make(map[string]any)
		for _, key := range obj.Keys() {
			val, ok, err := rt.convert(obj.Get(key), seen)
			if err != nil {
				return nil, false, err
			}
			if ok {
				out[key] = val
			}
		}
		return out, true, nil

	default:
		return obj.Export(), true, nil
	}
}

func (rt *scriptRuntime) wrapFunc(fn goja.Callable) rawconfig.Func {
	return func(args ...any) (any, error) {
		rt.mu.Lock()
		defer rt.mu.Unlock()

		values := make([]goja.Value, len(args))
		for i, arg := range args {
			values[i] = rt.vm.ToValue(arg)
		}

		res, err := fn(goja.Undefined(), values...)
		if err != nil {
			return nil, err
		}
		out, _, err := rt.convert(res, map[*goja.Object]bool{})
		return out, err
	}
}

// platformName mirrors Node's process.platform.
func platformName() string {
	if runtime.GOOS == "windows" {
		return "win32"
	}
	return runtime.GOOS
}
