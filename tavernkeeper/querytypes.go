package tavernkeeper

// PageQuery defines the query parameters understood by every paged collection, e.g.
// /api_v0/users/{id}/characters?archived=true&page=2
type PageQuery struct {
	Archived bool `url:"archived,omitempty"` // archived characters instead of active ones
	Page     int  `url:"page,omitempty"`     // 1-based; filled in by GetPaged
}
