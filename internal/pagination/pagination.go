package pagination

import (
	"strconv"
)

// PageSize 所有列表页统一的每页条数
const PageSize = 10

// Page 渲染分页导航所需的元信息
type Page struct {
	Number     int
	Size       int
	TotalItems int64
	TotalPages int
	Offset     int
	HasPrev    bool
	HasNext    bool
}

// Paginate 把请求页码收敛到合法区间：
// 小于 1 取 1，超出末页钳制到末页；空集合返回合法的空第 1 页。
func Paginate(total int64, requested int) Page {
	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return Page{
		Number:     number,
		Size:       PageSize,
		TotalItems: total,
		TotalPages: totalPages,
		Offset:     (number - 1) * PageSize,
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
	}
}

// ParsePage 解析 page 查询参数，非数字回退到 1
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (p Page) PrevNumber() int { return p.Number - 1 }
func (p Page) NextNumber() int { return p.Number + 1 }
