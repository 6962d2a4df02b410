//  1. 基本流构建 & Map
//     s := StreamOf([]int{1, 2, 3, 4})
//     squared := Map(s, func(x int) int { return x * x }).ToSlice()
//     // [1 4 9 16]
//
//  2. 大整数折叠
//     fact := ProductBig(RangeClosed(1, 21))
//     // 51090942171709440000
//
//  3. 函数组合
//     op := Compose(
//     func(i int) int { return i + 1 },
//     func(i int) int { return i * 2 },
//     func(i int) int { return i + 3 },
//     )
//     op(5) // 15
//
//  4. 按首字母分组计数
//     words := []string{"about", "this", "that", "those"}
//     counts, _ := Collect(StreamOf(words), GroupingBy(func(s string) string {
//     return s[:1]
//     }, Counting[string]()))
//     // map[a:1 t:3]
//
//  5. ToMap 重复键必须显式给出合并函数，否则返回 ErrDuplicateKey
//     m, err := Collect(StreamOf(lines), ToMap(firstLetter, func(s string) string { return s }, KeepFirst[string]()))
//
//  6. 级联分组：把 map 重新变成 Entry 流，按值再分组
//     byCount, _ := Collect(Entries(freq), GroupingBy(EntryValue[string, int64],
//     Mapping(EntryKey[string, int64], ToList[string]())))
//     top, err := MaxBy(Entries(byCount), ComparingByKey[int64, []string]())
//     // 空 map 时 err 是 ErrNoSuchElement
package toolutil
