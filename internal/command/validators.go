// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/memoctl/internal/attrs"
	"github.com/staranto/memoctl/internal/bench"
)

// GlobalFlagsValidator checks the flags whose values cannot be validated on
// their own.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if spec := c.String("attrs"); spec != "" {
		var al attrs.AttrList
		if err := al.Set(spec); err != nil {
			return fmt.Errorf("--attrs: %w", err)
		}
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	if !slices.Contains(validOutputFlagValues, value.(string)) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func BackendValidator(value any) error {
	var validBackendFlagValues = []string{bench.BackendLRU, bench.BackendSplay, "both"}
	if !slices.Contains(validBackendFlagValues, value.(string)) {
		return fmt.Errorf("must be one of %v", validBackendFlagValues)
	}
	return nil
}

// MinValidator returns a validator that rejects ints below floor.
func MinValidator(floor int) FlagValidatorType {
	return func(value any) error {
		if value.(int) < floor {
			return fmt.Errorf("must be at least %d", floor)
		}
		return nil
	}
}

func ProbabilityValidator(value any) error {
	if p := value.(float64); p < 0 || p > 1 {
		return errors.New("must be between 0 and 1")
	}
	return nil
}
