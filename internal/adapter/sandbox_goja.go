package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dop251/goja"

	m "github.com/mouse-blink/undefender/internal/model"
)

type gojaSandbox struct {
	vm       *goja.Runtime
	seal     goja.Callable
	describe goja.Callable
}

func newGojaSandbox() (*gojaSandbox, error) {
	vm := goja.New()

	if _, err := vm.RunString(prelude); err != nil {
		return nil, fmt.Errorf("goja prelude: %w", err)
	}

	helper := vm.Get(helperName)
	if helper == nil || goja.IsUndefined(helper) {
		return nil, errors.New("goja prelude: helper not installed")
	}

	obj := helper.ToObject(vm)

	seal, ok := goja.AssertFunction(obj.Get("seal"))
	if !ok {
		return nil, errors.New("goja prelude: seal is not a function")
	}

	describe, ok := goja.AssertFunction(obj.Get("describe"))
	if !ok {
		return nil, errors.New("goja prelude: describe is not a function")
	}

	return &gojaSandbox{vm: vm, seal: seal, describe: describe}, nil
}

func (s *gojaSandbox) Bootstrap(ctx context.Context, init m.Initializer) error {
	_, err := s.run(ctx, func() (goja.Value, error) {
		if _, err := s.vm.RunString("var " + init.Binding + ";"); err != nil {
			return nil, err
		}

		fnValue, err := s.vm.RunString("(" + init.Function + ")")
		if err != nil {
			return nil, err
		}

		fn, ok := goja.AssertFunction(fnValue)
		if !ok {
			return nil, errors.New("initializer is not a function")
		}

		args := make([]goja.Value, 0, len(init.Arguments))
		for _, arg := range init.Arguments {
			args = append(args, s.vm.ToValue(arg))
		}

		return fn(goja.Undefined(), args...)
	})
	if err != nil {
		return bootstrapError(err)
	}

	if _, err := s.seal(goja.Undefined(), s.vm.ToValue(init.Binding)); err != nil {
		return bootstrapError(err)
	}

	return nil
}

func (s *gojaSandbox) Evaluate(ctx context.Context, fragment string) (m.ResolvedValue, error) {
	value, err := s.run(ctx, func() (goja.Value, error) {
		return s.vm.RunString(fragment)
	})
	if err != nil {
		return m.Unresolved(), fragmentError(err)
	}

	description, err := s.describe(goja.Undefined(), value)
	if err != nil {
		return m.Unresolved(), fragmentError(err)
	}

	return parseDescription(description.String()), nil
}

func (s *gojaSandbox) EvaluateString(ctx context.Context, program string) (string, error) {
	value, err := s.run(ctx, func() (goja.Value, error) {
		return s.vm.RunString(program)
	})
	if err != nil {
		return "", fragmentError(err)
	}

	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return "", fragmentError(errors.New("program produced no value"))
	}

	return value.String(), nil
}

func (s *gojaSandbox) Close() {
	s.vm.Interrupt("sandbox closed")
}

// run executes fn and interrupts the runtime when ctx is done. The interrupt
// flag is always cleared before returning so the runtime stays usable.
func (s *gojaSandbox) run(ctx context.Context, fn func() (goja.Value, error)) (value goja.Value, err error) {
	defer func() {
		if caught := recover(); caught != nil {
			value, err = nil, fmt.Errorf("goja panic: %v", caught)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if ctx.Done() != nil {
		done := make(chan struct{})

		var wg sync.WaitGroup

		wg.Add(1)

		go func() {
			defer wg.Done()

			select {
			case <-ctx.Done():
				s.vm.Interrupt(ctx.Err())
			case <-done:
			}
		}()

		defer func() {
			close(done)
			wg.Wait()
			s.vm.ClearInterrupt()
		}()
	}

	value, err = fn()

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) && ctx.Err() != nil {
		return nil, fmt.Errorf("evaluation interrupted: %w", ctx.Err())
	}

	return value, err
}
