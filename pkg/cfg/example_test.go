package cfg_test

import (
	"fmt"

	"github.com/flowsketch/flowsketch/pkg/cfg"
)

func ExampleBuild() {
	g := cfg.Build("int x = 1;\nif (x > 0) {\nx = 0;\n}\nreturn x;")

	for _, b := range g.Blocks {
		fmt.Printf("%d %s\n", b.ID, b.Kind)
	}
	fmt.Println("edges:", len(g.Edges))
	// Output:
	// 0 entry
	// 1 statement
	// 2 decision
	// 3 statement
	// 4 exit
	// edges: 5
}

func ExampleGraph_Outgoing() {
	g := cfg.Build("if (ready) {\nstart();\n}\nstop();")

	for _, e := range g.Outgoing(g.Decisions()[0].ID) {
		fmt.Printf("%d -> %d %s\n", e.From, e.To, e.Label)
	}
	// Output:
	// 2 -> 3 True
	// 2 -> 4 False
}
