package adapter

import (
	"context"
	"fmt"
	"strings"

	m "github.com/mouse-blink/undefender/internal/model"
)

// Supported sandbox engines.
const (
	EngineGoja = "goja"
	EngineOtto = "otto"
)

// helperName is the non-enumerable global holding the value classifier.
const helperName = "__undefender__"

// Sandbox is an isolated JavaScript evaluation context. A sandbox is owned
// by one worker and is not safe for concurrent use.
type Sandbox interface {
	// Bootstrap declares the storage binding, runs the initializer once and
	// snapshots the global objects used for identity resolution.
	Bootstrap(ctx context.Context, init m.Initializer) error
	// Evaluate runs a fragment and classifies its value. A failing fragment
	// leaves the sandbox usable.
	Evaluate(ctx context.Context, fragment string) (m.ResolvedValue, error)
	// EvaluateString runs a program and returns its completion value as text.
	EvaluateString(ctx context.Context, program string) (string, error)
	Close()
}

// SandboxFactory creates a fresh sandbox for the named engine.
type SandboxFactory func(engine string) (Sandbox, error)

// NewSandbox creates a sandbox backed by the named engine. An empty name
// selects goja.
func NewSandbox(engine string) (Sandbox, error) {
	switch engine {
	case "", EngineGoja:
		return newGojaSandbox()
	case EngineOtto:
		return newOttoSandbox()
	default:
		return nil, fmt.Errorf("unknown sandbox engine %q", engine)
	}
}

// Engines lists the accepted engine names.
func Engines() []string {
	return []string{EngineGoja, EngineOtto}
}

// HostObjectStubs are browser objects replaced by inert empty objects.
var HostObjectStubs = []string{
	"window", "self", "document", "navigator", "location", "history",
	"localStorage", "sessionStorage", "performance", "crypto", "screen",
}

// HostFunctionStubs are browser constructors and functions replaced by no-ops.
var HostFunctionStubs = []string{
	"alert", "fetch", "XMLHttpRequest", "Event", "CustomEvent", "Worker",
	"EventSource", "WebSocket", "File", "FileReader", "Blob", "URL",
	"URLSearchParams", "FormData", "MutationObserver", "ResizeObserver",
	"IntersectionObserver", "Image", "CanvasRenderingContext2D",
	"AudioContext", "HTMLCanvasElement", "setTimeout", "setInterval",
	"clearTimeout", "clearInterval", "requestAnimationFrame",
}

// builtinGlobals are checked first when matching values by identity.
var builtinGlobals = []string{
	"globalThis", "console", "Math", "JSON", "Reflect", "Intl", "Atomics",
	"Object", "Function", "Array", "Number", "Boolean", "String", "Symbol",
	"BigInt", "Date", "RegExp", "Promise", "Proxy", "Map", "Set", "WeakMap",
	"WeakSet", "WeakRef", "Error", "EvalError", "RangeError", "ReferenceError",
	"SyntaxError", "TypeError", "URIError", "ArrayBuffer", "SharedArrayBuffer",
	"DataView", "Int8Array", "Uint8Array", "Uint8ClampedArray", "Int16Array",
	"Uint16Array", "Int32Array", "Uint32Array", "Float32Array", "Float64Array",
	"BigInt64Array", "BigUint64Array", "parseInt", "parseFloat", "isNaN",
	"isFinite", "decodeURI", "decodeURIComponent", "encodeURI",
	"encodeURIComponent", "escape", "unescape", "eval",
}

// prelude installs the host stubs and the value classifier. It is ES5 so
// every engine can run it.
var prelude = buildPrelude()

func buildPrelude() string {
	quote := func(names []string) string {
		quoted := make([]string, 0, len(names))
		for _, name := range names {
			quoted = append(quoted, m.QuoteJS(name))
		}

		return "[" + strings.Join(quoted, ",") + "]"
	}

	return `(function (g) {
  var objects = ` + quote(HostObjectStubs) + `;
  var functions = ` + quote(HostFunctionStubs) + `;
  var builtins = ` + quote(builtinGlobals) + `;
  var helper = ` + m.QuoteJS(helperName) + `;
  var i;
  var noop = function () {};
  for (i = 0; i < objects.length; i++) {
    if (typeof g[objects[i]] === "undefined") { g[objects[i]] = {}; }
  }
  for (i = 0; i < functions.length; i++) {
    if (typeof g[functions[i]] === "undefined") { g[functions[i]] = function () {}; }
  }
  g.console = { log: noop, info: noop, warn: noop, error: noop, debug: noop, trace: noop };
  var catalog = [];
  function seal(exclude) {
    var seen = {};
    var keys;
    catalog = [];
    function add(name) {
      var v;
      if (name === exclude || name === helper || seen.hasOwnProperty(name)) { return; }
      try { v = g[name]; } catch (e) { return; }
      if (v === null || (typeof v !== "object" && typeof v !== "function")) { return; }
      seen[name] = true;
      catalog.push([name, v]);
    }
    for (i = 0; i < builtins.length; i++) { add(builtins[i]); }
    for (i = 0; i < objects.length; i++) { add(objects[i]); }
    for (i = 0; i < functions.length; i++) { add(functions[i]); }
    keys = Object.keys(g);
    for (i = 0; i < keys.length; i++) { add(keys[i]); }
    return catalog.length;
  }
  function describe(v) {
    var t = typeof v;
    var j;
    if (v === null) { return "nullish:null"; }
    if (t === "undefined") { return "nullish:undefined"; }
    if (t === "string") { return "string:" + v; }
    if (t === "number") { return "number:" + ((v === 0 && 1 / v < 0) ? "-0" : String(v)); }
    if (t === "boolean") { return "boolean:" + String(v); }
    if (t === "object" || t === "function") {
      for (j = 0; j < catalog.length; j++) {
        if (catalog[j][1] === v) { return "global:" + catalog[j][0]; }
      }
      if (t === "function") {
        var name = "";
        try { name = String(v.name || ""); } catch (e) {}
        return "function:" + name;
      }
    }
    return "unresolved:";
  }
  Object.defineProperty(g, helper, {
    value: { seal: seal, describe: describe },
    enumerable: false, configurable: false, writable: false
  });
})(this);`
}

// parseDescription turns the classifier's "kind:text" output into a value.
func parseDescription(description string) m.ResolvedValue {
	kind, text, ok := strings.Cut(description, ":")
	if !ok {
		return m.Unresolved()
	}

	switch m.ValueKind(kind) {
	case m.KindString:
		return m.StringValue(text)
	case m.KindNumber:
		return m.NumberValue(text)
	case m.KindBoolean:
		return m.BooleanValue(text == "true")
	case m.KindNullish:
		return m.NullishValue(text == "null")
	case m.KindGlobal:
		return m.GlobalValue(text)
	case m.KindFunction:
		return m.FunctionValue(text)
	default:
		return m.Unresolved()
	}
}

func bootstrapError(err error) error {
	return fmt.Errorf("%w: %w", m.ErrBootstrapExecution, err)
}

func fragmentError(err error) error {
	return fmt.Errorf("%w: %w", m.ErrFragmentEvaluation, err)
}
