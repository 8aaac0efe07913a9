package helpers

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is one window over an ordered result set.
type Page[T any] struct {
	Items   []T
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

// ClampLimitOffset applies the listing defaults: limit 20, limit clamped to
// [1,100], offset clamped to >= 0.
func ClampLimitOffset(limit, offset *int) (int, int) {
	l := DefaultLimit
	if limit != nil {
		l = *limit
	}
	if l < 1 {
		l = 1
	}
	if l > MaxLimit {
		l = MaxLimit
	}

	o := 0
	if offset != nil && *offset > 0 {
		o = *offset
	}
	return l, o
}

// Paginate slices rows according to limit/offset. Total is the count before slicing.
func Paginate[T any](rows []T, limit, offset *int) Page[T] {
	l, o := ClampLimitOffset(limit, offset)
	start, end := CalculateSliceIndices(o, l, len(rows))

	items := make([]T, 0, end-start)
	items = append(items, rows[start:end]...)

	return Page[T]{
		Items:   items,
		Total:   len(rows),
		Limit:   l,
		Offset:  o,
		HasMore: o < len(rows) && l < len(rows)-o,
	}
}

// CalculateSliceIndices bounds [offset, offset+limit) to the slice length
// without computing offset+limit, so huge offsets cannot wrap.
func CalculateSliceIndices(offset, limit, totalItems int) (start, end int) {
	if offset >= totalItems {
		return totalItems, totalItems
	}

	start = offset
	end = totalItems
	if limit < totalItems-start {
		end = start + limit
	}
	return start, end
}
