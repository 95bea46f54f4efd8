package factorial

import (
	"context"
	"fmt"
)

// ExampleNewCalculator demonstrates creating a Calculator with
// different algorithm implementations.
func ExampleNewCalculator() {
	iterative := NewCalculator(IterativeCalculator{})
	tree := NewCalculator(ProductTreeCalculator{})

	fmt.Println(iterative.Name())
	fmt.Println(tree.Name())
	// Output:
	// Iterative (O(n), Sequential)
	// Product Tree (Divide & Conquer, Parallel)
}

// ExampleNewDefaultFactory demonstrates using the factory to obtain
// pre-registered calculators by name.
func ExampleNewDefaultFactory() {
	factory := NewDefaultFactory()

	calc, err := factory.Get("iterative")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result, err := calc.Calculate(context.Background(), nil, 0, 5, Options{})
	if err != nil {
		fmt.Printf("Calculation error: %v\n", err)
		return
	}

	fmt.Println(result)
	// Output:
	// 120
}
