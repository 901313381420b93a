// Copyright 2025 CoolAir Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSetting is returned when a required setting is empty.
	ErrMissingSetting = errors.New("missing required setting")

	// ErrInvalidSetting is returned when a setting has an unusable value.
	ErrInvalidSetting = errors.New("invalid setting")
)

func missingSetting(key string) error {
	return fmt.Errorf("%w: %s", ErrMissingSetting, key)
}

func invalidSetting(key, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidSetting, key, reason)
}
