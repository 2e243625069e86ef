// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package errutil_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"

	"github.com/riftwalk/riftwalk/pkg/errutil"
)

type kindError struct{ kind string }

func (e *kindError) Error() string { return "backend: " + e.kind }

func (e *kindError) Code() string { return "INTEGRATION_" + e.kind }

func TestCode(t *testing.T) {
	typed := &kindError{kind: "OFFLINE"}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), ""},
		{"oops code", oops.Code("SAVE_INVALID").Errorf("bad"), "SAVE_INVALID"},
		{"oops wrap keeps inner code", oops.With("slot", "a").Wrap(oops.Code("SAVE_IO").Errorf("disk")), "SAVE_IO"},
		{"typed error", typed, "INTEGRATION_OFFLINE"},
		{"typed error under fmt wrap", fmt.Errorf("login: %w", typed), "INTEGRATION_OFFLINE"},
		{"typed error under codeless oops", oops.With("op", "login").Wrap(typed), "INTEGRATION_OFFLINE"},
		{"oops code wins over typed", oops.Code("SIM_DIALOGUE_BUSY").Wrap(typed), "SIM_DIALOGUE_BUSY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errutil.Code(tt.err))
		})
	}
}

func TestAssertErrorCode_MatchingCode(t *testing.T) {
	errutil.AssertErrorCode(t, oops.Code("YEAR_OUT_OF_RANGE").Errorf("year 9000"), "YEAR_OUT_OF_RANGE")
	errutil.AssertErrorCode(t, &kindError{kind: "TIMEOUT"}, "INTEGRATION_TIMEOUT")
}

func TestAssertErrorContext_MatchingKeyValue(t *testing.T) {
	err := oops.With("slot", "quicksave").Errorf("disk full")
	errutil.AssertErrorContext(t, err, "slot", "quicksave")
}
