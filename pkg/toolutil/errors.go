package toolutil

import "errors"

var (
	// 空流/空映射上求最大值这类操作，调用方不能假设有默认值
	ErrNoSuchElement = errors.New("toolutil: no such element")

	// ToMap 没有提供合并函数时遇到重复键
	ErrDuplicateKey = errors.New("toolutil: duplicate key")

	// 键提取函数拿到了不合法的输入(比如空字符串取首字母)
	ErrEmptyInput = errors.New("toolutil: empty input")
)
