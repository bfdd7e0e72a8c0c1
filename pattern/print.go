package pattern

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Sprint renders p as an indented tree, one node per sub-pattern. It is meant
// for debugging and tracing.
//
//	(x, Point { y: 1..=5, .. })
//
// is printed as
//
//	tuple
//	├── [0]  x
//	└── [1]  struct Point, ..
//	    └── [y]  1..=5
func Sprint(p Pattern) string {
	printer := tp.New()
	addNode(printer, "", p)
	return printer.String()
}

func addNode(printer tp.Tree, meta string, p Pattern) {
	var branch tp.Tree
	add := func(label string, leaf bool) {
		switch {
		case leaf && meta == "":
			printer.AddNode(label)
		case leaf:
			printer.AddMetaNode(meta, label)
		case meta == "":
			branch = printer.AddBranch(label)
		default:
			branch = printer.AddMetaBranch(meta, label)
		}
	}
	switch p := p.(type) {
	case Or:
		add("or", false)
		for i, alt := range p.Alts {
			addNode(branch, fmt.Sprintf("|%d", i), alt)
		}
	case Tuple:
		add("tuple", false)
		for i, e := range p.Elems {
			addNode(branch, fmt.Sprintf("%d", i), e)
		}
	case Struct:
		label := "struct " + p.Name
		if p.Rest {
			label += ", .."
		}
		add(label, false)
		for _, f := range p.Fields {
			addNode(branch, f.Name, f.Pattern)
		}
	case Variant:
		label := "variant " + p.Enum + "::" + p.Case
		if p.Ellipsis {
			label += "(..)"
		}
		if p.Ellipsis || len(p.Payload) == 0 {
			add(label, true)
			break
		}
		add(label, false)
		for i, e := range p.Payload {
			addNode(branch, fmt.Sprintf("%d", i), e)
		}
	case Binder:
		label := "binder " + p.Name
		if p.ByRef {
			label = "binder ref " + p.Name
		}
		add(label, false)
		addNode(branch, "@", p.Inner)
	default:
		add(str(p), true)
	}
}
