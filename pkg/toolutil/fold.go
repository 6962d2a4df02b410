package toolutil

import "math/big"

// ProductBig 大整数连乘，21! 已经超出 int64 范围
// 每一步都生成新的 big.Int，不复用累加器，避免别名修改
func ProductBig(s Stream[int64]) *big.Int {
	return Reduce(Map(s, big.NewInt), big.NewInt(1), func(acc, v *big.Int) *big.Int {
		return new(big.Int).Mul(acc, v)
	})
}

// Factorial 计算 n!，n <= 0 时结果是 1(空乘积)
func Factorial(n int64) *big.Int {
	return ProductBig(RangeClosed(1, n))
}

// IntUnaryOperator 一元整数变换
type IntUnaryOperator func(int) int

// Identity 组合的种子
func Identity(i int) int { return i }

// AndThen 先执行 f 再执行 g
func (f IntUnaryOperator) AndThen(g IntUnaryOperator) IntUnaryOperator {
	return func(i int) int { return g(f(i)) }
}

// Compose 从左到右组合所有变换，空列表得到恒等变换
func Compose(ops ...IntUnaryOperator) IntUnaryOperator {
	return Reduce(StreamOf(ops), IntUnaryOperator(Identity), IntUnaryOperator.AndThen)
}
