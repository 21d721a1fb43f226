package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	domain "github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
)

// Recipe is one processing step of the production graph
type Recipe struct {
	Module  string
	Inputs  []string
	Outputs []string
	Rate    float64
}

// RecipeGraph links resources through the processing modules that turn one
// into another. Vertices are resource identifiers; an edge input→output
// exists for every module consuming the input and producing the output.
type RecipeGraph struct {
	graph   graph.Graph[string, string]
	recipes []Recipe
	// modules producing each edge, keyed by "input>output"
	edges map[string][]string
}

// ErrRecipeCycle is returned by ProductionOrder when resources feed each other
var ErrRecipeCycle = errors.New("recipe graph contains a cycle")

// NewRecipeGraph builds the production graph of the catalog's processing modules
func NewRecipeGraph(cat *domain.Catalog) (*RecipeGraph, error) {
	g := graph.New(graph.StringHash, graph.Directed())
	rg := &RecipeGraph{graph: g, edges: make(map[string][]string)}

	for _, resource := range cat.Resources() {
		if err := g.AddVertex(resource.Identifier); err != nil {
			return nil, fmt.Errorf("failed to add resource %s: %w", resource.Identifier, err)
		}
	}

	for _, module := range cat.ProcessingModules() {
		p := module.Processing
		rg.recipes = append(rg.recipes, Recipe{
			Module:  module.Identifier,
			Inputs:  p.Inputs.Identifiers(),
			Outputs: p.Outputs.Identifiers(),
			Rate:    p.ProcessingRate,
		})

		for _, input := range p.Inputs {
			for _, output := range p.Outputs {
				key := input.Identifier + ">" + output.Identifier
				if len(rg.edges[key]) == 0 {
					err := g.AddEdge(input.Identifier, output.Identifier, graph.EdgeAttribute("module", module.Identifier))
					if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
						return nil, fmt.Errorf("failed to link %s: %w", key, err)
					}
				}
				rg.edges[key] = append(rg.edges[key], module.Identifier)
			}
		}
	}

	return rg, nil
}

// Recipes lists the processing steps sorted by module identifier
func (rg *RecipeGraph) Recipes() []Recipe {
	return rg.recipes
}

// Producers returns the modules turning input into output
func (rg *RecipeGraph) Producers(input, output string) []string {
	return rg.edges[input+">"+output]
}

// ProductionOrder returns the resources sorted so that every resource comes
// after the ones it is made from. Ties are broken alphabetically.
func (rg *RecipeGraph) ProductionOrder() ([]string, error) {
	order, err := graph.StableTopologicalSort(rg.graph, func(a, b string) bool { return a < b })
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecipeCycle, rg.Cycles())
	}
	return order, nil
}

// Cycles returns the groups of resources that can be made from each other,
// each sorted, largest group first
func (rg *RecipeGraph) Cycles() [][]string {
	components, err := graph.StronglyConnectedComponents(rg.graph)
	if err != nil {
		return nil
	}

	var cycles [][]string
	for _, component := range components {
		if len(component) < 2 {
			continue
		}
		sorted := append([]string(nil), component...)
		sort.Strings(sorted)
		cycles = append(cycles, sorted)
	}
	sort.Slice(cycles, func(i, j int) bool {
		if len(cycles[i]) != len(cycles[j]) {
			return len(cycles[i]) > len(cycles[j])
		}
		return cycles[i][0] < cycles[j][0]
	})
	return cycles
}

// Raw returns the resources no recipe produces
func (rg *RecipeGraph) Raw() []string {
	predecessors, err := rg.graph.PredecessorMap()
	if err != nil {
		return nil
	}
	var raw []string
	for vertex, incoming := range predecessors {
		if len(incoming) == 0 {
			raw = append(raw, vertex)
		}
	}
	sort.Strings(raw)
	return raw
}
