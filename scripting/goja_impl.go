package scripting

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dop251/goja"

	"github.com/wudi/colorkit/cmm"
)

// GojaEngine is not safe for concurrent use; Converter serializes access.
type GojaEngine struct {
	vm *goja.Runtime
}

func NewEngine() *GojaEngine {
	return &GojaEngine{vm: goja.New()}
}

func (e *GojaEngine) Execute(ctx context.Context, script string) (interface{}, error) {
	val, err := e.run(ctx, func() (goja.Value, error) {
		return e.vm.RunString(script)
	})
	if err != nil {
		return nil, err
	}
	return val.Export(), nil
}

// HasFunction reports whether the global name is a callable function.
func (e *GojaEngine) HasFunction(name string) bool {
	_, ok := goja.AssertFunction(e.vm.Get(name))
	return ok
}

// Call invokes the global function name with args converted to JS values.
func (e *GojaEngine) Call(ctx context.Context, name string, args ...interface{}) (goja.Value, error) {
	fn, ok := goja.AssertFunction(e.vm.Get(name))
	if !ok {
		return nil, fmt.Errorf("script does not define function %q", name)
	}
	jsArgs := make([]goja.Value, len(args))
	for i, a := range args {
		jsArgs[i] = e.vm.ToValue(a)
	}
	return e.run(ctx, func() (goja.Value, error) {
		return fn(goja.Undefined(), jsArgs...)
	})
}

// run executes f and interrupts the VM when ctx ends first.
func (e *GojaEngine) run(ctx context.Context, f func() (goja.Value, error)) (goja.Value, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := f()
	close(done)
	wg.Wait()
	e.vm.ClearInterrupt()

	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			if cause := interrupted.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		return nil, err
	}
	return val, nil
}

func (e *GojaEngine) RegisterHost(host Host) error {
	app := e.vm.NewObject()
	err := app.Set("alert", func(call goja.FunctionCall) goja.Value {
		msg := ""
		if len(call.Arguments) > 0 {
			msg = call.Arguments[0].String()
		}
		host.Alert(msg)
		return goja.Undefined()
	})
	if err != nil {
		return err
	}
	if err := e.vm.Set("app", app); err != nil {
		return err
	}

	// Color space identifiers, as in ImageColorSpace[srcFormat].
	spaces := e.vm.NewObject()
	for _, s := range []cmm.Space{cmm.SpaceRGB, cmm.SpaceCMYK} {
		if err := spaces.Set(string(s), string(s)); err != nil {
			return err
		}
	}
	return e.vm.Set("ImageColorSpace", spaces)
}
