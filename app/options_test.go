// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cnf := newConfig(nil)
	assert.Equal(t, ControlFlow{Mode: Poll}, cnf.controlFlow)
	assert.False(t, cnf.replaceListener)
	assert.NotNil(t, cnf.logger)
}
