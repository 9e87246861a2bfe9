package ode_test

import (
	"fmt"

	"github.com/katalvlaran/pkmodel/grid"
	"github.com/katalvlaran/pkmodel/ode"
)

// ExampleSolve integrates warfarin elimination, dC/dt = -CL/V·C, over ten days.
func ExampleSolve() {
	const V, CL, dose = 10.0, 0.1, 100.0
	ydot := func(_ float64, y, dydt []float64) { dydt[0] = -CL / V * y[0] }

	times := grid.MustLinspace(0, 10*24, 200)
	sol, err := ode.Solve(ydot, []float64{dose / V}, times, nil)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("C(0)=%.3f mg/l\nC(240)=%.3f mg/l\n", sol.States[0][0], sol.Final()[0])
	// Output:
	// C(0)=10.000 mg/l
	// C(240)=0.907 mg/l
}
