// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

// ErrInvalidConfig marks configuration validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")
