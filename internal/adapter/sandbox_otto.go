package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robertkrimen/otto"

	m "github.com/mouse-blink/undefender/internal/model"
)

var errOttoHalted = errors.New("otto: evaluation halted")

// ottoSandbox runs fragments on otto. otto only understands ES5, so
// artifacts relying on newer syntax fail at bootstrap.
type ottoSandbox struct {
	vm *otto.Otto
}

func newOttoSandbox() (*ottoSandbox, error) {
	vm := otto.New()

	if _, err := vm.Run(prelude); err != nil {
		return nil, fmt.Errorf("otto prelude: %w", err)
	}

	return &ottoSandbox{vm: vm}, nil
}

func (s *ottoSandbox) Bootstrap(ctx context.Context, init m.Initializer) error {
	_, err := s.run(ctx, func() (otto.Value, error) {
		if _, err := s.vm.Run("var " + init.Binding + ";"); err != nil {
			return otto.UndefinedValue(), err
		}

		fn, err := s.vm.Run("(" + init.Function + ")")
		if err != nil {
			return otto.UndefinedValue(), err
		}

		if !fn.IsFunction() {
			return otto.UndefinedValue(), errors.New("initializer is not a function")
		}

		args := make([]interface{}, 0, len(init.Arguments))
		for _, arg := range init.Arguments {
			args = append(args, arg)
		}

		return fn.Call(otto.UndefinedValue(), args...)
	})
	if err != nil {
		return bootstrapError(err)
	}

	if _, err := s.vm.Call(helperName+".seal", nil, init.Binding); err != nil {
		return bootstrapError(err)
	}

	return nil
}

func (s *ottoSandbox) Evaluate(ctx context.Context, fragment string) (m.ResolvedValue, error) {
	value, err := s.run(ctx, func() (otto.Value, error) {
		return s.vm.Run(fragment)
	})
	if err != nil {
		return m.Unresolved(), fragmentError(err)
	}

	description, err := s.vm.Call(helperName+".describe", nil, value)
	if err != nil {
		return m.Unresolved(), fragmentError(err)
	}

	text, err := description.ToString()
	if err != nil {
		return m.Unresolved(), fragmentError(err)
	}

	return parseDescription(text), nil
}

func (s *ottoSandbox) EvaluateString(ctx context.Context, program string) (string, error) {
	value, err := s.run(ctx, func() (otto.Value, error) {
		return s.vm.Run(program)
	})
	if err != nil {
		return "", fragmentError(err)
	}

	if value.IsUndefined() || value.IsNull() {
		return "", fragmentError(errors.New("program produced no value"))
	}

	text, err := value.ToString()
	if err != nil {
		return "", fragmentError(err)
	}

	return text, nil
}

func (s *ottoSandbox) Close() {}

// run executes fn, halting otto through its interrupt channel when ctx is done.
func (s *ottoSandbox) run(ctx context.Context, fn func() (otto.Value, error)) (value otto.Value, err error) {
	defer func() {
		if caught := recover(); caught != nil {
			if caught == errOttoHalted { //nolint:errorlint // sentinel passed through panic
				value, err = otto.UndefinedValue(), fmt.Errorf("evaluation interrupted: %w", ctx.Err())

				return
			}

			value, err = otto.UndefinedValue(), fmt.Errorf("otto panic: %v", caught)
		}
	}()

	if err := ctx.Err(); err != nil {
		return otto.UndefinedValue(), err
	}

	if ctx.Done() != nil {
		s.vm.Interrupt = make(chan func(), 1)
		done := make(chan struct{})

		var wg sync.WaitGroup

		wg.Add(1)

		go func() {
			defer wg.Done()

			select {
			case <-ctx.Done():
				s.vm.Interrupt <- func() { panic(errOttoHalted) }
			case <-done:
			}
		}()

		defer func() {
			close(done)
			wg.Wait()
			s.vm.Interrupt = nil
		}()
	}

	return fn()
}
