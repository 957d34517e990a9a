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

// Package graph provides a dependency graph over named vertices with strongly-connected component
// analysis.
package graph

import (
	"sort"
)

// Graph is a directed graph whose edges point from a vertex to the vertices it depends on.
type Graph[K comparable] struct {
	keys  []K
	verts map[K]int
	edges [][]int
}

// New creates an empty graph.
func New[K comparable](capacity int) *Graph[K] {
	return &Graph[K]{verts: make(map[K]int, capacity)}
}

// AddVertex adds a vertex, returning false if it already exists.
func (g *Graph[K]) AddVertex(k K) bool {
	if _, ok := g.verts[k]; ok {
		return false
	}
	g.verts[k] = len(g.keys)
	g.keys = append(g.keys, k)
	g.edges = append(g.edges, nil)
	return true
}

// Has reports whether k is a vertex of the graph.
func (g *Graph[K]) Has(k K) bool {
	_, ok := g.verts[k]
	return ok
}

// Len returns the number of vertices.
func (g *Graph[K]) Len() int { return len(g.keys) }

// AddEdge records that from depends on to. Both vertices must exist.
func (g *Graph[K]) AddEdge(from, to K) {
	f, t := g.verts[from], g.verts[to]
	if !g.hasEdge(f, t) {
		g.edges[f] = append(g.edges[f], t)
	}
}

// HasEdge reports whether from depends directly on to.
func (g *Graph[K]) HasEdge(from, to K) bool {
	f, ok := g.verts[from]
	if !ok {
		return false
	}
	t, ok := g.verts[to]
	return ok && g.hasEdge(f, t)
}

func (g *Graph[K]) hasEdge(from, to int) bool {
	for _, succ := range g.edges[from] {
		if succ == to {
			return true
		}
	}
	return false
}

// SCC returns the strongly-connected components of the graph in dependency order: every component
// appears after the components it depends on. Vertices within a component keep insertion order.
func (g *Graph[K]) SCC() [][]K {
	state := sccState{
		indexTable: make([]int, len(g.keys)),
		lowLink:    make([]int, len(g.keys)),
		onStack:    make([]bool, len(g.keys)),
	}
	for v := range g.keys {
		if state.indexTable[v] == 0 {
			g.tarjanSCC(&state, v)
		}
	}
	sccs := make([][]K, len(state.sccs))
	for i, c := range state.sccs {
		sort.Ints(c)
		sccs[i] = make([]K, len(c))
		for j, v := range c {
			sccs[i][j] = g.keys[v]
		}
	}
	return sccs
}

type sccState struct {
	index      int
	indexTable []int
	lowLink    []int
	onStack    []bool

	stack []int
	sccs  [][]int
}

// Tarjan's SCC algorithm, based on https://github.com/gonum/gonum/blob/master/graph/topo/tarjan.go
//
// A component is output only after every component reachable from it, i.e. in dependency order.
func (g *Graph[K]) tarjanSCC(state *sccState, v int) {
	state.index++
	state.indexTable[v] = state.index
	state.lowLink[v] = state.index
	state.stack = append(state.stack, v)
	state.onStack[v] = true

	for _, succ := range g.edges[v] {
		if state.indexTable[succ] == 0 {
			g.tarjanSCC(state, succ)
			state.lowLink[v] = min(state.lowLink[v], state.lowLink[succ])
		} else if state.onStack[succ] {
			state.lowLink[v] = min(state.lowLink[v], state.indexTable[succ])
		}
	}

	// v is the root of a component; pop it from the stack
	if state.lowLink[v] == state.indexTable[v] {
		var (
			c    []int
			succ int
		)
		for {
			succ, state.stack = state.stack[len(state.stack)-1], state.stack[:len(state.stack)-1]
			state.onStack[succ] = false
			c = append(c, succ)
			if succ == v {
				break
			}
		}
		state.sccs = append(state.sccs, c)
	}
}
