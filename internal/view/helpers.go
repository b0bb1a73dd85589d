package view

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/matchbook/matchbook/internal/domain"
)

func profileURL(username string) templ.SafeURL {
	return templ.URL("/user/" + url.PathEscape(username))
}

func postURL(id int64) templ.SafeURL {
	return templ.URL("/post/" + strconv.FormatInt(id, 10))
}

func pageURL(base string, page int) templ.SafeURL {
	return templ.URL(base + "?page=" + strconv.Itoa(page))
}

func avatarURL(u *domain.User) templ.SafeURL {
	if u == nil || u.AvatarKey == "" {
		return templ.URL("/static/default-avatar.svg")
	}
	return templ.URL("/uploads/" + url.PathEscape(u.AvatarKey))
}

func followAction(verb, username string) string {
	return fmt.Sprintf("@post('/%s/%s')", verb, url.PathEscape(username))
}

func formatTime(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006 15:04")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func followButtonID(u *domain.User) string {
	return "follow-" + strconv.FormatInt(u.ID, 10)
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}
