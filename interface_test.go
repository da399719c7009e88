// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restx

import (
	"net/url"
	"testing"

	"github.com/gogama/restx/payload"
	"github.com/gogama/restx/request"
	"github.com/gogama/restx/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGet(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		expected := &request.Execution{}
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
			return p.Method == "GET" && p.URL.String() == "http://foo/" &&
				p.Payload.Kind() == payload.KindNone
		}), result.JSONObject).Return(expected, nil).Once()
		e, err := Get(m, "http://foo/", result.JSONObject)
		assert.Same(t, expected, e)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("error invalid URL", func(t *testing.T) {
		m := newMockDoer(t)
		e, err := Get(m, ":::", result.String)
		assert.Nil(t, e)
		var argErr *request.ArgumentError
		assert.ErrorAs(t, err, &argErr)
		m.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})
}

func TestDelete(t *testing.T) {
	expected := &request.Execution{}
	m := newMockDoer(t)
	m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
		return p.Method == "DELETE" && p.URL.String() == "http://bar/1"
	}), result.Void).Return(expected, nil).Once()
	e, err := Delete(m, "http://bar/1", result.Void)
	assert.Same(t, expected, e)
	assert.NoError(t, err)
	m.AssertExpectations(t)
}

func TestPost(t *testing.T) {
	expected := &request.Execution{}
	m := newMockDoer(t)
	m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
		return p.Method == "POST" && p.URL.String() == "http://baz/" &&
			p.Payload.Kind() == payload.KindText
	}), result.String).Return(expected, nil).Once()
	e, err := Post(m, "http://baz/", payload.Text("eggs"), result.String)
	assert.Same(t, expected, e)
	assert.NoError(t, err)
	m.AssertExpectations(t)
}

func TestPut(t *testing.T) {
	expected := &request.Execution{}
	m := newMockDoer(t)
	m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
		return p.Method == "PUT" && p.Payload.Kind() == payload.KindBytes
	}), result.Bytes).Return(expected, nil).Once()
	e, err := Put(m, "http://baz/ham", payload.Bytes([]byte{1, 2}), result.Bytes)
	assert.Same(t, expected, e)
	assert.NoError(t, err)
	m.AssertExpectations(t)
}

func TestPostForm(t *testing.T) {
	expected := &request.Execution{}
	m := newMockDoer(t)
	m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
		return p.Method == "POST" && p.URL.String() == "http://poster/boy" &&
			p.Payload.Kind() == payload.KindForm
	}), result.Void).Return(expected, nil).Once()
	e, err := PostForm(m, "http://poster/boy", url.Values{"a": {"b c"}}, result.Void)
	assert.Same(t, expected, e)
	assert.NoError(t, err)
	m.AssertExpectations(t)
}

func TestClientIsExecutor(t *testing.T) {
	var x Executor = &Client{}
	assert.NotNil(t, x)
}

type mockDoer struct {
	mock.Mock
}

func newMockDoer(t *testing.T) *mockDoer {
	m := &mockDoer{}
	m.Test(t)
	return m
}

func (m *mockDoer) Do(p *request.Plan, k result.Kind) (*request.Execution, error) {
	args := m.Called(p, k)
	e := args.Get(0)
	err := args.Error(1)
	if e == nil {
		return nil, err
	}
	return e.(*request.Execution), err
}
