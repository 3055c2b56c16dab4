package roster

import (
	"strconv"
	"strings"

	"github.com/arobertov/trans-schedule-sub000/internal/model"
)

// ResolveState 行引用解析状态
type ResolveState int

const (
	// ResolveEmpty 引用为空，调用方整体跳过该引用
	ResolveEmpty ResolveState = iota
	// ResolveOK 已定位到矩阵模板行
	ResolveOK
	// ResolvePending 语法合法但当前未加载矩阵，无法定位
	ResolvePending
	// ResolveInvalid 非正整数引用
	ResolveInvalid
	// ResolveOutOfRange 整数引用在矩阵中无对应行
	ResolveOutOfRange
)

// ResolvedRef 行引用解析结果
type ResolvedRef struct {
	State     ResolveState
	Raw       string           // 去除首尾空白后的原始输入
	RowNumber int              // 语法合法时解析出的行号
	Row       *model.MatrixRow // State == ResolveOK 时非空
}

// ResolveReference 解析用户输入的行引用并在矩阵行中定位模板行
//
// 定位顺序：优先匹配显式行号，未命中时按位置下标（行号-1）回退，
// 仍未命中视为越界。纯函数，无副作用。
func ResolveReference(raw string, rows []model.MatrixRow) ResolvedRef {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ResolvedRef{State: ResolveEmpty, Raw: trimmed}
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return ResolvedRef{State: ResolveInvalid, Raw: trimmed}
	}

	if rows == nil {
		return ResolvedRef{State: ResolvePending, Raw: trimmed, RowNumber: n}
	}

	for i := range rows {
		if rows[i].RowNumber == n {
			return ResolvedRef{State: ResolveOK, Raw: trimmed, RowNumber: n, Row: &rows[i]}
		}
	}
	if idx := n - 1; idx < len(rows) {
		return ResolvedRef{State: ResolveOK, Raw: trimmed, RowNumber: n, Row: &rows[idx]}
	}

	return ResolvedRef{State: ResolveOutOfRange, Raw: trimmed, RowNumber: n}
}
