package expr

// The canonical equation builders used by move-generated axioms and by
// the ABSTRACT move. Each returns the standard first-order equational
// form for its axiom shape over the given operation name(s).

// Associativity: (x op y) op z = x op (y op z)
func Associativity(op string) Expr {
	x, y, z := Var("x"), Var("y"), Var("z")
	return Eq(App(op, App(op, x, y), z), App(op, x, App(op, y, z)))
}

// Commutativity: x op y = y op x
func Commutativity(op string) Expr {
	x, y := Var("x"), Var("y")
	return Eq(App(op, x, y), App(op, y, x))
}

// LeftIdentity: e op x = x
func LeftIdentity(op, identity string) Expr {
	x := Var("x")
	return Eq(App(op, Const(identity), x), x)
}

// RightIdentity: x op e = x
func RightIdentity(op, identity string) Expr {
	x := Var("x")
	return Eq(App(op, x, Const(identity)), x)
}

// RightInverse: x op inv(x) = e
func RightInverse(op, inv, identity string) Expr {
	x := Var("x")
	return Eq(App(op, x, App(inv, x)), Const(identity))
}

// Idempotence: x op x = x
func Idempotence(op string) Expr {
	x := Var("x")
	return Eq(App(op, x, x), x)
}

// Anticommutativity: x op y = neg(y op x)
func Anticommutativity(op, neg string) Expr {
	x, y := Var("x"), Var("y")
	return Eq(App(op, x, y), App(neg, App(op, y, x)))
}

// LeftDistributivity: x op2 (y op z) = (x op2 y) op (x op2 z)
func LeftDistributivity(op, op2 string) Expr {
	x, y, z := Var("x"), Var("y"), Var("z")
	return Eq(App(op2, x, App(op, y, z)), App(op, App(op2, x, y), App(op2, x, z)))
}

// Jacobi: with no addition operation available, the three cyclic terms
// [[x,y],z], [[y,z],x] and [[z,x],y] are combined with the bracket
// itself: [[[[x,y],z], [[y,z],x]], [[z,x],y]] = [[x,y],z].
func Jacobi(bracket string) Expr {
	x, y, z := Var("x"), Var("y"), Var("z")
	inner := App(bracket, App(bracket, x, y), z)
	cyc1 := App(bracket, App(bracket, y, z), x)
	cyc2 := App(bracket, App(bracket, z, x), y)
	return Eq(App(bracket, App(bracket, inner, cyc1), cyc2), inner)
}

// LeftSelfDistributivity: a op (b op c) = (a op b) op (a op c)
func LeftSelfDistributivity(op string) Expr {
	a, b, c := Var("a"), Var("b"), Var("c")
	return Eq(App(op, a, App(op, b, c)), App(op, App(op, a, b), App(op, a, c)))
}

// RightSelfDistributivity: (a op b) op c = (a op c) op (b op c)
func RightSelfDistributivity(op string) Expr {
	a, b, c := Var("a"), Var("b"), Var("c")
	return Eq(App(op, App(op, a, b), c), App(op, App(op, a, c), App(op, b, c)))
}
