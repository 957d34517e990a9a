// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSCCDependencyOrder(t *testing.T) {
	g := New[string](4)
	for _, v := range []string{"main", "even", "odd", "log"} {
		assert.True(t, g.AddVertex(v))
	}
	assert.False(t, g.AddVertex("odd"))
	g.AddEdge("main", "even")
	g.AddEdge("even", "odd")
	g.AddEdge("odd", "even")
	g.AddEdge("odd", "log")
	g.AddEdge("odd", "log")

	assert.True(t, g.HasEdge("odd", "log"))
	assert.False(t, g.HasEdge("log", "odd"))
	assert.Equal(t, [][]string{{"log"}, {"even", "odd"}, {"main"}}, g.SCC())
}

func TestSCCSelfLoop(t *testing.T) {
	g := New[int](2)
	g.AddVertex(1)
	g.AddVertex(2)
	g.AddEdge(1, 1)
	assert.Equal(t, [][]int{{1}, {2}}, g.SCC())
}
