package cli

import (
	"fmt"
	"strings"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/dtos"
)

// TreeFormatter renders the structure of a spacecraft as a tree:
// compartments, then their modules and equipment
type TreeFormatter struct {
	useColors bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors bool) *TreeFormatter {
	return &TreeFormatter{
		useColors: useColors,
	}
}

type treeNode struct {
	label    string
	color    string
	children []treeNode
}

// FormatTree renders the spacecraft tree
func (f *TreeFormatter) FormatTree(sc dtos.SpacecraftDTO) string {
	root := treeNode{label: fmt.Sprintf("%s (%s)", sc.Name, sc.Classification)}

	for _, compartment := range sc.Compartments {
		node := treeNode{
			label: fmt.Sprintf("#%d %s [%s]", compartment.Index, compartment.Compartment, formatMass(compartment.DryMass)),
		}
		for _, module := range compartment.Modules {
			node.children = append(node.children, treeNode{
				label: fmt.Sprintf("module %s: %s%s", module.Name, module.Module, f.cargoText(module.Cargo)),
				color: f.getModuleColor(module),
			})
		}
		for _, equipment := range compartment.Equipment {
			node.children = append(node.children, treeNode{
				label: fmt.Sprintf("equipment %s: %s", equipment.Name, equipment.Equipment),
			})
		}
		root.children = append(root.children, node)
	}

	var builder strings.Builder
	f.formatNode(&builder, root, "", true, true)
	return builder.String()
}

// formatNode recursively formats a node and its children
func (f *TreeFormatter) formatNode(builder *strings.Builder, node treeNode, prefix string, isLast bool, isRoot bool) {
	// Build the tree structure prefix
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	reset := ""
	if node.color != "" {
		reset = f.colorReset()
	}
	builder.WriteString(fmt.Sprintf("%s%s%s%s\n", linePrefix, node.color, node.label, reset))

	if len(node.children) > 0 {
		var childPrefix string
		if isRoot {
			childPrefix = ""
		} else if isLast {
			childPrefix = prefix + "    "
		} else {
			childPrefix = prefix + "│   "
		}

		for i, child := range node.children {
			f.formatNode(builder, child, childPrefix, i == len(node.children)-1, false)
		}
	}
}

func (f *TreeFormatter) cargoText(cargo *dtos.CargoDTO) string {
	if cargo == nil {
		return ""
	}
	if cargo.Resource == "" {
		return fmt.Sprintf(" (empty, %s)", formatMass(cargo.Capacity))
	}
	return fmt.Sprintf(" (%s %s / %s)", formatMass(cargo.Amount), cargo.Resource, formatMass(cargo.Capacity))
}

// getModuleColor highlights loaded holds
func (f *TreeFormatter) getModuleColor(module dtos.ModuleSlotDTO) string {
	if !f.useColors || module.Cargo == nil {
		return ""
	}
	if module.Cargo.Resource != "" {
		return "\033[32m" // Green
	}
	return "\033[33m" // Yellow
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}

// FormatGroups lists the module groups on one line each
func (f *TreeFormatter) FormatGroups(groups []dtos.ModuleGroupDTO) string {
	if len(groups) == 0 {
		return "(no module groups)"
	}
	var builder strings.Builder
	for _, group := range groups {
		hatch := ""
		if group.HasHatch {
			hatch = ", hatch"
		}
		builder.WriteString(fmt.Sprintf("group %d: %s, %d modules%s\n", group.Index, group.Type, group.Modules, hatch))
	}
	return builder.String()
}
