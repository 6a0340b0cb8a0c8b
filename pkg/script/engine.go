// Package script builds texture and material libraries from a small Lisp
// dialect evaluated in a sandboxed zygomys interpreter.
//
//	(def wood (marble (rgb 0.5 0.3 0.1) (rgb 0.7 0.5 0.3) (rgb 0.3 0.2 0.1) :stripes 4))
//	(defmaterial "floor" (matte :diffuse wood :roughness 20))
//	(defmaterial "vase" (mix (glass :eta 1.5) (metal :roughness 0.2) :amount 0.3))
package script

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/visit"
)

// DefaultTimeout is the hard limit for a single evaluation
const DefaultTimeout = 5 * time.Second

// EvalError is a non-fatal error in user code: a parse error, a runtime
// error or a definition that fails validation
type EvalError struct {
	Line    int
	Col     int
	Message string
	Err     error // underlying constructor error, when a builtin failed
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func (e EvalError) Unwrap() error {
	return e.Err
}

// Config controls an Engine
type Config struct {
	// Timeout bounds one evaluation. Zero uses DefaultTimeout.
	Timeout time.Duration
	// ImageDir is the directory (image "file.png") paths resolve against.
	// Paths may not escape it. Empty disables image loading.
	ImageDir string
	// MaxImageResolution caps the longer side of loaded images. Zero keeps
	// the full size.
	MaxImageResolution int
}

// DefaultConfig returns a configuration with image loading disabled
func DefaultConfig() Config {
	return Config{Timeout: DefaultTimeout}
}

// Engine evaluates material scripts. It is safe for concurrent use; each
// call to Evaluate runs in a fresh sandbox.
type Engine struct {
	cfg        Config
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates an engine
func NewEngine(cfg Config) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ImageDir != "" {
		cfg.ImageDir = filepath.Clean(cfg.ImageDir)
	}
	return &Engine{cfg: cfg}
}

// Evaluate runs source and returns the library it defines.
//
// Return semantics:
//   - On success: library + nil errors + nil error
//   - On parse, runtime or validation failure: nil library + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): nil + nil + error
func (e *Engine) Evaluate(source string) (*Library, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		lib, evalErrs, err := e.evaluate(source)
		ch <- evalResult{library: lib, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, e.cfg.Timeout, &e.mu, &e.generation)
}

func (e *Engine) evaluate(source string) (*Library, []EvalError, error) {
	start := time.Now()
	lib := newLibrary()

	// Empty source is a valid program that defines nothing
	if strings.TrimSpace(source) == "" {
		return lib, nil, nil
	}

	// Sandbox mode keeps user code away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	b := &builder{cfg: e.cfg, lib: lib}
	b.register(env)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, b.evalErrors(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, b.evalErrors(err), nil
	}

	if evalErrs := validateLibrary(lib); len(evalErrs) > 0 {
		return nil, evalErrs, nil
	}

	core.Logger().Debug("evaluated material script",
		"materials", len(lib.materialOrder),
		"textures", len(lib.textureOrder),
		"elapsed", time.Since(start))
	return lib, nil, nil
}

// validateLibrary turns error findings into EvalErrors and logs warnings
func validateLibrary(lib *Library) []EvalError {
	var evalErrs []EvalError
	check := func(kind, name string, root visit.Node) {
		for _, f := range visit.Validate(root) {
			if f.Severity == visit.SeverityError {
				evalErrs = append(evalErrs, EvalError{
					Message: fmt.Sprintf("%s %q: %s", kind, name, f.Error()),
					Err:     f,
				})
				continue
			}
			core.Logger().Warn("material script validation", kind, name, "path", f.Path, "message", f.Message)
		}
	}
	for _, name := range lib.textureOrder {
		check("texture", name, lib.textures[name])
	}
	for _, name := range lib.materialOrder {
		check("material", name, lib.materials[name])
	}
	return evalErrs
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// evalErrors converts a zygomys error into EvalErrors, attaching the Go
// error of the builtin that failed, if any
func (b *builder) evalErrors(err error) []EvalError {
	evalErrs := parseZygomysError(err)
	if b.cause != nil {
		for i := range evalErrs {
			evalErrs[i].Err = b.cause
		}
	}
	return evalErrs
}

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers where the message carries them
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, pattern := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := pattern.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
