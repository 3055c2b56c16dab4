package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arobertov/trans-schedule-sub000/internal/model"
)

// CellClass 引用单元格的冲突分类
type CellClass int

const (
	// ClassNeutral 引用为空，不着色
	ClassNeutral CellClass = iota
	// ClassUnique 列内唯一且无跨列冲突
	ClassUnique
	// ClassDuplicate 列内重复或与另一类列共享取值
	ClassDuplicate
)

// ValidationResult 全量校验结果
//
// Classes 与员工行对齐，每行四列依次为整月、区间一、区间二、区间三
type ValidationResult struct {
	Classes [][4]CellClass
	Summary model.ConflictSummary
	Warning string // 跨列冲突提示，无冲突时为空串
}

// ValidateReferences 对全部员工的引用做全量校验
//
// 每次相关编辑后整表重算，不做增量维护——表格规模只有几十到
// 上百行，重算开销可以忽略，换来的是不依赖任何缓存状态的正确性
func ValidateReferences(sets []model.ReferenceSet) *ValidationResult {
	// 列内频次（多重集）
	freq := [4]map[string]int{}
	for i := range freq {
		freq[i] = map[string]int{}
	}
	for _, s := range sets {
		for i, v := range refValues(s) {
			if v != "" {
				freq[i][v]++
			}
		}
	}

	// 区间三列取值的并集，用于判定整月列的跨列冲突
	periodUnion := map[string]bool{}
	for i := 1; i < 4; i++ {
		for v := range freq[i] {
			periodUnion[v] = true
		}
	}

	result := &ValidationResult{
		Classes: make([][4]CellClass, len(sets)),
	}

	for rowIdx, s := range sets {
		for i, v := range refValues(s) {
			if v == "" {
				result.Classes[rowIdx][i] = ClassNeutral
				continue
			}

			var cross bool
			if i == 0 {
				cross = periodUnion[v]
			} else {
				cross = freq[0][v] > 0
			}

			if freq[i][v] == 1 && !cross {
				result.Classes[rowIdx][i] = ClassUnique
			} else {
				result.Classes[rowIdx][i] = ClassDuplicate
			}
		}
	}

	result.Summary = buildSummary(freq)
	result.Warning = conflictWarning(result.Summary)
	return result
}

// refValues 按列序返回去除空白后的四个引用值
func refValues(s model.ReferenceSet) [4]string {
	return [4]string{
		strings.TrimSpace(s.Global),
		strings.TrimSpace(s.P1),
		strings.TrimSpace(s.P2),
		strings.TrimSpace(s.P3),
	}
}

// ReadReferences 从网格引用列读出全部员工的引用集合
func ReadReferences(g GridHost) []model.ReferenceSet {
	sets := make([]model.ReferenceSet, g.Rows())
	for row := range sets {
		sets[row] = model.ReferenceSet{
			Global: g.GetCell(row, ColGlobal),
			P1:     g.GetCell(row, ColP1),
			P2:     g.GetCell(row, ColP2),
			P3:     g.GetCell(row, ColP3),
		}
	}
	return sets
}

func buildSummary(freq [4]map[string]int) model.ConflictSummary {
	return model.ConflictSummary{
		Global:   sortedKeys(freq[0]),
		P1:       sortedKeys(freq[1]),
		P2:       sortedKeys(freq[2]),
		P3:       sortedKeys(freq[3]),
		GlobalP1: intersect(freq[0], freq[1]),
		GlobalP2: intersect(freq[0], freq[2]),
		GlobalP3: intersect(freq[0], freq[3]),
	}
}

// conflictWarning 拼接跨列冲突提示，每对交集最多展示 3 个样本值
func conflictWarning(s model.ConflictSummary) string {
	pairs := []struct {
		label  string
		values []string
	}{
		{"Global↔P1", s.GlobalP1},
		{"Global↔P2", s.GlobalP2},
		{"Global↔P3", s.GlobalP3},
	}

	var parts []string
	for _, p := range pairs {
		if len(p.values) == 0 {
			continue
		}
		samples := p.values
		if len(samples) > maxIssueSamples {
			samples = samples[:maxIssueSamples]
		}
		parts = append(parts, fmt.Sprintf("%s [%s]", p.label, strings.Join(samples, ", ")))
	}
	return strings.Join(parts, "; ")
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func intersect(a, b map[string]int) []string {
	var out []string
	for k := range a {
		if b[k] > 0 {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
