package roster

import (
	"fmt"
	"strings"
)

// 校验类问题均为提示性质，不阻断其余行的投影，也不阻止保存

// IssueKind 引用问题类别
type IssueKind int

const (
	// IssueInvalidRef 引用非空但不是正整数
	IssueInvalidRef IssueKind = iota
	// IssueRowOutOfRange 整数引用在矩阵中无对应行
	IssueRowOutOfRange
	// IssueMatrixMissing 设置了引用但当前未选择矩阵
	IssueMatrixMissing
)

// RefIssue 单处引用问题
type RefIssue struct {
	Kind      IssueKind `json:"kind"`
	Employee  string    `json:"employee"`
	Column    string    `json:"column"` // matrix_global / matrix_p1 / matrix_p2 / matrix_p3
	Raw       string    `json:"raw"`
	RowNumber int       `json:"rowNumber,omitempty"`
	RowCount  int       `json:"rowCount,omitempty"`
}

// maxIssueSamples 每类警告展示的样本上限
const maxIssueSamples = 3

// IssueReport 引用问题汇总
type IssueReport struct {
	Invalid       []RefIssue
	OutOfRange    []RefIssue
	MatrixMissing bool
}

// Add 归类记录一处问题
func (r *IssueReport) Add(issue RefIssue) {
	switch issue.Kind {
	case IssueInvalidRef:
		r.Invalid = append(r.Invalid, issue)
	case IssueRowOutOfRange:
		r.OutOfRange = append(r.OutOfRange, issue)
	case IssueMatrixMissing:
		r.MatrixMissing = true
	}
}

// Empty 是否没有任何问题
func (r *IssueReport) Empty() bool {
	return len(r.Invalid) == 0 && len(r.OutOfRange) == 0 && !r.MatrixMissing
}

// Warnings 生成用户可读的警告文本，每类一条，样本最多 3 个
func (r *IssueReport) Warnings() []string {
	var out []string
	if len(r.Invalid) > 0 {
		out = append(out, fmt.Sprintf("无效的行引用 %s（共 %d 处）",
			sampleIssues(r.Invalid), len(r.Invalid)))
	}
	if len(r.OutOfRange) > 0 {
		out = append(out, fmt.Sprintf("行引用超出矩阵范围 %s（共 %d 处）",
			sampleIssues(r.OutOfRange), len(r.OutOfRange)))
	}
	if r.MatrixMissing {
		out = append(out, "已填写行引用，但当前未选择矩阵，相关单元格未生成班次")
	}
	return out
}

func sampleIssues(issues []RefIssue) string {
	n := len(issues)
	if n > maxIssueSamples {
		n = maxIssueSamples
	}
	samples := make([]string, 0, n)
	for _, it := range issues[:n] {
		samples = append(samples, fmt.Sprintf("%s:%s", it.Employee, it.Raw))
	}
	return "[" + strings.Join(samples, ", ") + "]"
}
