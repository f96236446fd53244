// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package fxutil runs one-shot commands inside an fx application.
package fxutil

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/dig"
	"go.uber.org/fx"
)

// fxAppTestOverride allows tests to capture the arguments of OneShot instead
// of running it. It is always nil in production.
var fxAppTestOverride func(interface{}, []fx.Option) error

// OneShot runs the given function in an fx.App using the supplied options.
// The function's arguments are supplied by fx and may be any type provided
// by the options. If it returns an error, so does OneShot.
//
// The app is started before the function runs and stopped after it returns.
func OneShot(oneShotFunc interface{}, opts ...fx.Option) error {
	if fxAppTestOverride != nil {
		return fxAppTestOverride(oneShotFunc, opts)
	}

	delayed := newDelayedFxInvocation(oneShotFunc)
	opts = append(opts, delayed.option(), fx.NopLogger)
	app := fx.New(opts...)

	if err := app.Err(); err != nil {
		return UnwrapIfErrArgumentsFailed(err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return errors.Join(err, stopApp(app))
	}

	if err := delayed.call(); err != nil {
		return errors.Join(err, stopApp(app))
	}

	return stopApp(app)
}

// UnwrapIfErrArgumentsFailed returns the error a constructor or invoked
// function failed with, without the dependency graph fx wraps around it.
func UnwrapIfErrArgumentsFailed(err error) error {
	return dig.RootCause(err)
}

func stopApp(app *fx.App) error {
	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	return app.Stop(stopCtx)
}

// delayedFxInvocation captures the arguments fx resolves for fn during
// fx.Invoke and calls fn later, once the app has started.
type delayedFxInvocation struct {
	fn   interface{}
	args []reflect.Value
}

func newDelayedFxInvocation(fn interface{}) *delayedFxInvocation {
	ftype := reflect.TypeOf(fn)
	if ftype == nil || ftype.Kind() != reflect.Func {
		panic(fmt.Sprintf("delayedFxInvocation requires a function, got %T", fn))
	}
	return &delayedFxInvocation{fn: fn}
}

// option returns an fx.Option that records the arguments of fn.
func (i *delayedFxInvocation) option() fx.Option {
	ftype := reflect.TypeOf(i.fn)

	in := make([]reflect.Type, ftype.NumIn())
	for n := range in {
		in[n] = ftype.In(n)
	}
	recorderType := reflect.FuncOf(in, []reflect.Type{}, false)
	recorder := reflect.MakeFunc(recorderType, func(args []reflect.Value) []reflect.Value {
		i.args = args
		return []reflect.Value{}
	})

	return fx.Invoke(recorder.Interface())
}

// call invokes fn with the recorded arguments and returns its error, if any.
func (i *delayedFxInvocation) call() error {
	res := reflect.ValueOf(i.fn).Call(i.args)
	if len(res) > 0 {
		if err, ok := res[0].Interface().(error); ok {
			return err
		}
	}
	return nil
}
