// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/gogama/restx/request"
	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	expected := Timeouts{Connect: 10 * time.Second, Read: 60 * time.Second}
	assert.Equal(t, expected, DefaultPolicy.Timeout(&request.Execution{}))
	assert.Equal(t, expected, DefaultPolicy.Timeout(&request.Execution{AttemptTimeouts: 3, Err: syscall.ETIMEDOUT}))
}

func TestPlatform(t *testing.T) {
	assert.Equal(t, Timeouts{}, Platform.Timeout(&request.Execution{}))
	assert.Equal(t, Timeouts{}, Platform.Timeout(&request.Execution{AttemptTimeouts: 10, Err: syscall.ETIMEDOUT}))
}

func TestFixed(t *testing.T) {
	p := Fixed(time.Minute, 33*time.Hour)
	expected := Timeouts{Connect: time.Minute, Read: 33 * time.Hour}
	assert.Equal(t, expected, p.Timeout(&request.Execution{}))
	assert.Equal(t, expected, p.Timeout(&request.Execution{AttemptTimeouts: 1, Err: syscall.ETIMEDOUT, Attempt: 1}))
	assert.Equal(t, expected, p.Timeout(&request.Execution{AttemptTimeouts: 2, Err: syscall.ETIMEDOUT, Attempt: 2}))
}

func TestAdaptive(t *testing.T) {
	p := Adaptive(time.Second, 5*time.Millisecond, 10*time.Millisecond, 100*time.Millisecond)
	read := func(x *request.Execution) time.Duration {
		to := p.Timeout(x)
		assert.Equal(t, time.Second, to.Connect)
		return to.Read
	}
	x := &request.Execution{}
	assert.Equal(t, 5*time.Millisecond, read(x))
	x.AttemptTimeouts = 1
	x.Err = syscall.ETIMEDOUT
	assert.Equal(t, 10*time.Millisecond, read(x))
	x.Attempt = 1
	x.Err = errors.New("just a routine problem")
	assert.Equal(t, 5*time.Millisecond, read(x))
	x.Attempt = 2
	x.AttemptTimeouts = 2
	x.Err = syscall.ETIMEDOUT
	assert.Equal(t, 100*time.Millisecond, read(x))
	x.Attempt = 3
	x.AttemptTimeouts = 3
	assert.Equal(t, 100*time.Millisecond, read(x))
}

func TestEffective(t *testing.T) {
	p, err := request.NewPlan("GET", "http://example.com")
	if !assert.NoError(t, err) {
		return
	}
	e := &request.Execution{Plan: p}
	t.Run("policy only", func(t *testing.T) {
		assert.Equal(t, Timeouts{Connect: 10 * time.Second, Read: 60 * time.Second}, Effective(DefaultPolicy, e))
	})
	t.Run("nil policy", func(t *testing.T) {
		assert.Equal(t, Timeouts{}, Effective(nil, e))
	})
	t.Run("plan overrides", func(t *testing.T) {
		connect, read := 250*time.Millisecond, -time.Second
		p.ConnectTimeout = &connect
		p.ReadTimeout = &read
		defer func() {
			p.ConnectTimeout = nil
			p.ReadTimeout = nil
		}()
		assert.Equal(t, Timeouts{Connect: connect}, Effective(DefaultPolicy, e))
	})
}

func TestTimeoutsString(t *testing.T) {
	assert.Equal(t, "connect=1s read=0s", Timeouts{Connect: time.Second}.String())
}
