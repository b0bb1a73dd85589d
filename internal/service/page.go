package service

import "math"

// pageBounds normalizes a 1-based page number and returns the SQL offset.
// Pages are capped so that page*perPage stays within int32.
func pageBounds(page, perPage int) (int, int) {
	if perPage < 1 {
		perPage = 1
	}
	page = min(max(page, 1), math.MaxInt32/perPage)
	return page, (page - 1) * perPage
}
