package bigint

import "fmt"

func ExampleBigInteger_AddNoCarry() {
	a := FromUint64(^uint64(0))
	one := FromUint64(1)

	carry := a.AddNoCarry(&one)
	fmt.Println(carry, a[0], a[1], a.NumBits())
	// Output:
	// false 0 1 65
}

func ExampleBigInteger_SubNoBorrow() {
	a := FromUint64(3)
	b := FromUint64(5)

	borrow := a.SubNoBorrow(&b)
	fmt.Println(borrow, a.NumBits())
	// Output:
	// true 2112
}

func ExampleBigInteger_Mul2() {
	z := FromUint64(5)
	z.Mul2()
	fmt.Println(z[0])
	z.Div2()
	z.Div2()
	fmt.Println(z[0])
	// Output:
	// 10
	// 2
}
