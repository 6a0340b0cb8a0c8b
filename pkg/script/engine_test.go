package script

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/material"
	"github.com/df07/go-progressive-shading/pkg/texture"
	"github.com/df07/go-progressive-shading/pkg/visit"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine(DefaultConfig())

	for _, source := range []string{"", "   \n\t  \n  "} {
		lib, evalErrs, err := eng.Evaluate(source)
		if err != nil {
			t.Fatalf("unexpected fatal error: %v", err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("unexpected eval errors: %v", evalErrs)
		}
		if lib == nil {
			t.Fatal("expected non-nil library")
		}
		if len(lib.MaterialNames()) != 0 || len(lib.TextureNames()) != 0 {
			t.Errorf("expected empty library, got %v %v", lib.MaterialNames(), lib.TextureNames())
		}
	}
}

func TestEvaluatePlainArithmetic(t *testing.T) {
	eng := NewEngine(DefaultConfig())

	lib, evalErrs, err := eng.Evaluate("(def x 10)\n(+ x 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if lib == nil {
		t.Fatal("expected non-nil library")
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine(DefaultConfig())

	lib, evalErrs, err := eng.Evaluate("(defmaterial \"a\" (matte)\n(rgb 1 2")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if lib != nil {
		t.Fatal("expected nil library on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for syntax error")
	}
	if evalErrs[0].Message == "" {
		t.Error("eval error message should not be empty")
	}
	if evalErrs[0].Line > 0 {
		t.Logf("extracted line info: line=%d, message=%q", evalErrs[0].Line, evalErrs[0].Message)
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	eng := NewEngine(DefaultConfig())

	lib, evalErrs, err := eng.Evaluate(`(defmaterial "a" (matte :diffuse no-such-texture))`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if lib != nil {
		t.Fatal("expected nil library on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for undefined symbol")
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	e := EvalError{Line: 5, Message: "something went wrong"}
	s := e.Error()
	if !strings.Contains(s, "line 5") {
		t.Errorf("Error() should contain line info, got: %s", s)
	}
	if !strings.Contains(s, "something went wrong") {
		t.Errorf("Error() should contain message, got: %s", s)
	}

	e2 := EvalError{Message: "no location"}
	if strings.Contains(e2.Error(), "line") {
		t.Errorf("Error() with no line should not contain 'line', got: %s", e2.Error())
	}

	cause := errors.New("cause")
	e3 := EvalError{Message: "wrapped", Err: cause}
	if !errors.Is(e3, cause) {
		t.Error("EvalError should unwrap to its cause")
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	eng := NewEngine(DefaultConfig())
	source := `(defmaterial "m" (plastic :diffuse (checkerboard (rgb 1 0 0) 0.5 :scale 4)))`

	var first material.Material
	for i := 0; i < 5; i++ {
		lib, evalErrs, err := eng.Evaluate(source)
		if err != nil {
			t.Fatalf("iteration %d: unexpected fatal error: %v", i, err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("iteration %d: unexpected eval errors: %v", i, evalErrs)
		}
		m, ok := lib.Material("m")
		if !ok {
			t.Fatalf("iteration %d: material not defined", i)
		}
		if first == nil {
			first = m
			continue
		}
		if !material.Equal(first, m) {
			t.Errorf("iteration %d: material differs from first evaluation", i)
		}
	}
}

func TestEvaluateTimeout(t *testing.T) {
	var mu sync.Mutex
	var gen uint64 = 1
	ch := make(chan evalResult) // never sends

	start := time.Now()
	_, _, err := waitWithTimeout(ch, 1, 50*time.Millisecond, &mu, &gen)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
}

func TestEvaluateGenerationDiscardsStale(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(2)

	ch := make(chan evalResult, 1)
	ch <- evalResult{}

	_, _, err := waitWithTimeout(ch, 1, time.Second, &mu, &gen)
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
}

func TestNewEngineDefaults(t *testing.T) {
	eng := NewEngine(Config{ImageDir: "textures/../textures/"})
	if eng.cfg.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", eng.cfg.Timeout, DefaultTimeout)
	}
	if eng.cfg.ImageDir != "textures" {
		t.Errorf("image dir = %q, want cleaned %q", eng.cfg.ImageDir, "textures")
	}
}

func TestValidateLibrary(t *testing.T) {
	lib := newLibrary()
	lib.textures["bad"] = texture.NewConstant(core.NewColor(math.NaN(), 0, 0))
	lib.textureOrder = append(lib.textureOrder, "bad")
	lib.textures["loud"] = texture.NewConstant(core.NewColor(-1, 0, 0))
	lib.textureOrder = append(lib.textureOrder, "loud")

	evalErrs := validateLibrary(lib)
	if len(evalErrs) != 1 {
		t.Fatalf("expected 1 eval error, got %d: %v", len(evalErrs), evalErrs)
	}
	if !strings.Contains(evalErrs[0].Message, `texture "bad"`) {
		t.Errorf("message = %q, want it to name the texture", evalErrs[0].Message)
	}
	var finding visit.ValidationError
	if !errors.As(evalErrs[0], &finding) {
		t.Fatalf("expected a visit.ValidationError cause, got %v", evalErrs[0].Err)
	}
	if finding.Severity != visit.SeverityError {
		t.Errorf("severity = %v, want error", finding.Severity)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"error on line format", "Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"no line info", "some generic error", 0, "some generic error"},
		{"line format lowercase", "error on line 12: missing paren", 12, "missing paren"},
		{"short line format", "line 3: bad keyword", 3, "bad keyword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errors.New(tt.msg))
			if len(errs) == 0 {
				t.Fatal("expected at least one error")
			}
			if errs[0].Line != tt.wantLine {
				t.Errorf("line = %d, want %d", errs[0].Line, tt.wantLine)
			}
			if !strings.Contains(errs[0].Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", errs[0].Message, tt.wantMsg)
			}
		})
	}
}
