// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package utils

import (
	"fmt"
	"strconv"
)

// Option is a loose bag of provider-specific settings ("speaker.voice",
// "speaker.stability", ...) handed to transformer constructors.
type Option map[string]interface{}

func (o Option) GetString(key string) (string, error) {
	v, ok := o[key]
	if !ok {
		return "", fmt.Errorf("option %q not found", key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func (o Option) GetUint64(key string) (uint64, error) {
	v, ok := o[key]
	if !ok {
		return 0, fmt.Errorf("option %q not found", key)
	}
	switch n := v.(type) {
	case uint64:
		return n, nil
	case int:
		return uint64(n), nil
	case int64:
		return uint64(n), nil
	case float64:
		return uint64(n), nil
	case string:
		return strconv.ParseUint(n, 10, 64)
	default:
		return 0, fmt.Errorf("option %q is not an unsigned integer", key)
	}
}

func (o Option) GetFloat64(key string) (float64, error) {
	v, ok := o[key]
	if !ok {
		return 0, fmt.Errorf("option %q not found", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("option %q is not a float", key)
	}
}
