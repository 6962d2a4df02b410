package runner

// Options 例程的运行参数，零值表示使用例程自带的默认值
// N 只有 HasN 为 true 时才生效，0 也是合法输入
// Input 为 nil 表示用内置数据，非 nil 的空切片就是空输入
type Options struct {
	N         int64    // reduce 的阶乘上限 / compose 的输入
	HasN      bool     // 调用方显式给出了 N
	Merge     string   // tomap 的合并策略 first/last/join/none，空表示全部跑一遍
	Separator string   // join 合并时的分隔符
	Top       int      // words 额外输出出现次数最多的前几个
	Input     []string // 替换例程内置的字面量数据
}

// Routine 一个可以独立运行的例程
// Run 产生结果，Check 判断结果是否符合预期
// Check 返回 *AssertionError 表示断言失败，返回其它错误算作故障
type Routine struct {
	Name  string
	Short string
	Run   func(opts Options) (any, error)
	Check func(opts Options, result any) error
}

type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"  // 断言失败
	StatusFault Status = "fault" // 返回错误或者 panic
)
