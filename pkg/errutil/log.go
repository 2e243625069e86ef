// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package errutil logs and asserts coded errors.
package errutil

import (
	"errors"
	"log/slog"
	"maps"
	"slices"

	"github.com/samber/oops"
)

// coded is implemented by typed errors that carry their own code, such as
// integration.Error.
type coded interface {
	Code() string
}

// Code returns the code carried by err: the oops code when one is set,
// otherwise the first Code() string in the chain. It is empty when err
// carries no code.
func Code(err error) string {
	if err == nil {
		return ""
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		if c, ok := oopsErr.Code().(string); ok && c != "" {
			return c
		}
	}
	var c coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// LogError logs err at error level with its code as error_code. Oops
// context entries become attributes of their own, in key order.
func LogError(logger *slog.Logger, msg string, err error) {
	attrs := []any{"error", err.Error()}
	if code := Code(err); code != "" {
		attrs = append(attrs, "error_code", code)
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		ctx := oopsErr.Context()
		for _, k := range slices.Sorted(maps.Keys(ctx)) {
			attrs = append(attrs, k, ctx[k])
		}
	}
	logger.Error(msg, attrs...)
}
