package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"

	"github.com/df07/go-progressive-shading/pkg/core"
)

//go:embed shaders/texture_eval.wgsl
var evaluatorWGSL string

// MaxShaderRecords is the largest root index the WGSL evaluator accepts.
// Must match MAX_RECORDS in texture_eval.wgsl.
const MaxShaderRecords = 64

// EvaluatorSource returns the WGSL compute shader that evaluates packed
// texture records. Bindings: 0 config uniform (root, hit count),
// 1 nodes, 2 pixels, 3 hits, 4 output colors.
func EvaluatorSource() string {
	return evaluatorWGSL
}

// CompileEvaluator compiles the evaluator shader to SPIR-V
func CompileEvaluator() ([]byte, error) {
	spirv, err := naga.Compile(evaluatorWGSL)
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to compile evaluator shader: %w", err)
	}
	core.Logger().Debug("compiled evaluator shader", "spirvBytes", len(spirv))
	return spirv, nil
}
