package dx12

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dx12bootstrap/examples/d3d12"
)

const (
	VertexEntryPoint = "vs"
	PixelEntryPoint  = "ps"
	VertexTarget     = "vs_5_0"
	PixelTarget      = "ps_5_0"

	shaderCompileFlags = d3d12.CompileDebug | d3d12.CompileSkipOptimization
)

// Shader holds the compiled vertex and pixel stages of one HLSL source.
type Shader struct {
	vs []byte
	ps []byte
}

// Create compiles the vs and ps entry points of source. Both stages compile
// concurrently; the first failure is returned.
func (s *Shader) Create(api d3d12.API, source []byte, sourceName string) error {
	s.Destroy()

	if len(source) == 0 {
		return errors.Wrapf(ErrInvalidArgument, "compile %s: empty source", sourceName)
	}

	var vs, ps []byte
	var group errgroup.Group
	group.Go(func() error {
		var err error
		vs, err = compileStage(api, source, sourceName, VertexEntryPoint, VertexTarget)
		return err
	})
	group.Go(func() error {
		var err error
		ps, err = compileStage(api, source, sourceName, PixelEntryPoint, PixelTarget)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	s.vs = vs
	s.ps = ps
	Logger().Debug("shader compiled", "source", sourceName, "vsBytes", len(vs), "psBytes", len(ps))
	return nil
}

// CreateFromFile reads path and compiles it with Create.
func (s *Shader) CreateFromFile(api d3d12.API, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		s.Destroy()
		return errors.Wrap(err, "read shader")
	}
	return s.Create(api, source, filepath.Base(path))
}

func compileStage(api d3d12.API, source []byte, sourceName, entryPoint, target string) ([]byte, error) {
	code, err := api.Compile(source, sourceName, entryPoint, target, shaderCompileFlags)
	if err != nil {
		var compileErr *d3d12.CompileError
		if errors.As(err, &compileErr) {
			Logger().Debug("shader compiler output", "entry", entryPoint, "message", compileErr.Message)
		}
		return nil, errors.Wrapf(errors.Mark(err, ErrShaderCompile), "compile %s %s", entryPoint, target)
	}
	return code, nil
}

func (s *Shader) VertexShader() []byte {
	mustBeCreated(s.vs != nil, "shader")
	return s.vs
}

func (s *Shader) PixelShader() []byte {
	mustBeCreated(s.ps != nil, "shader")
	return s.ps
}

func (s *Shader) Destroy() {
	s.vs = nil
	s.ps = nil
}
