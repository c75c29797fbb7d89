package pagination

const (
	// DefaultLimit is the standard page size when a size is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any page can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services. Page is
// zero-based.
type Params struct {
	Page int
	Size int
}

// Normalize clamps page to >= 0 and size to [1, MaxLimit].
func (p Params) Normalize() Params {
	if p.Page < 0 {
		p.Page = 0
	}
	p.Size = NormalizeLimit(p.Size)
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Page is a single slice of a larger ordered result.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPage assembles a page, never returning nil items.
func NewPage[T any](items []T, params Params, total int64) Page[T] {
	n := params.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       n.Page,
		Size:       n.Size,
		Total:      total,
		TotalPages: totalPages(total, n.Size),
	}
}

// Map converts the items of a page keeping its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, fn(item))
	}
	return Page[U]{Items: out, Page: p.Page, Size: p.Size, Total: p.Total, TotalPages: p.TotalPages}
}

func totalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
