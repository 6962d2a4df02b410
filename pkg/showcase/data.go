package showcase

// 例程用到的字面量数据，调用方通过 runner.Options.Input 可以替换

// Verses 三句诗，前两句都以 Y 开头，用来制造重复键
var Verses = []string{
	"Your success and failure lure you and your opponent respectively",
	"Your positivity is the ultimate source of energy for you",
	"Be a person of great integrity",
}

// WordVerses 词频统计用的版本，故意带了重复词和末尾空格
var WordVerses = []string{
	"Your success and failure lure you and your opponents respectively and",
	"Your positivity is the ultimate source of energy for you",
	"Be a person of great integrity is is ",
}

var Words = []string{"about", "this", "that", "those", "these", "apostrophe", "jamica"}

// pick 有输入时用输入，否则用默认数据
func pick(input, def []string) []string {
	if input != nil {
		return input
	}
	return def
}
