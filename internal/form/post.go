package form

import (
	"net/http"

	"github.com/matchbook/matchbook/internal/domain"
)

type Post struct {
	Title   string `form:"title" validate:"required,max=100"`
	Content string `form:"content" validate:"required,max=5000"`
}

func ParsePost(r *http.Request) Post {
	return Post{Title: field(r, "title"), Content: field(r, "content")}
}

func PostFrom(p *domain.Post) Post {
	return Post{Title: p.Title, Content: p.Content}
}

func (f Post) Validate() Errors {
	return check(f)
}
