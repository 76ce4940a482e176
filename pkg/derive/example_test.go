package derive_test

import (
	"fmt"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
)

func ExampleUnique() {
	set, err := derive.Unique(grammar.Demo(), 4)
	if err != nil {
		panic(err)
	}
	for _, s := range set.Sorted() {
		fmt.Println(s)
	}
	// Output:
	// 0011
	// 01
	// 0101
	// 0110
	// 10
	// 1001
	// 1010
	// 1100
}

func ExampleCount() {
	g := grammar.Grammar{'S': {"S+S", "a"}}
	counts, err := derive.Count(g, 5)
	if err != nil {
		panic(err)
	}
	for _, s := range []string{"a", "a+a", "a+a+a"} {
		fmt.Printf("%s -> %d\n", s, counts[s])
	}
	// Output:
	// a -> 1
	// a+a -> 1
	// a+a+a -> 2
}

func ExampleDerive() {
	d, err := derive.Derive[derive.Step](grammar.Demo(), 2, derive.Disabled)
	if err != nil {
		panic(err)
	}
	for _, s := range d.Strings() {
		fmt.Println(s, d[s][0])
	}
	// Output:
	// 01 [(0, 0A) (1, 1)]
	// 10 [(0, 1B) (1, 0)]
}

func ExampleGenerate() {
	res, err := derive.Generate(grammar.Demo(), 4, derive.Options{Repetition: derive.Counted})
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Shape, len(res.Counts), res.Total())
	// Output:
	// counts 8 8
}
