package staircase_test

import (
	"fmt"

	"pitchstair/staircase"
)

func ExampleController_Record() {
	c, err := staircase.New(staircase.Config{
		BaseFrequency:  2000,
		StartFrequency: 1000,
		Mode:           staircase.ModeLower,
	})
	if err != nil {
		panic(err)
	}

	for _, d := range []staircase.Direction{staircase.Lower, staircase.Higher, staircase.Lower} {
		out, err := c.Record(d)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%s correct=%v next=%.0f continue=%v\n", d, out.Correct, out.Frequency, out.Continue)
	}

	// Output:
	// lower correct=true next=1100 continue=true
	// higher correct=false next=990 continue=true
	// lower correct=true next=1089 continue=true
}
