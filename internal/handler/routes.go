package handler

import (
	"net/http"

	"github.com/matchbook/matchbook/internal/service"
	"github.com/matchbook/matchbook/internal/view"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Auth    *service.AuthService
	Users   *service.UserService
	Posts   *service.PostService
	Social  *service.SocialService
	Avatars *service.AvatarService
	// Limiter throttles login and signup POSTs; nil disables throttling.
	Limiter      *service.TokenBucket
	DB           Pinger
	CookieSecure bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, s Services) {
	authHandler := NewAuthHandler(s.Auth, s.Users, s.CookieSecure)
	accountHandler := NewAccountHandler(s.Users, authHandler)
	userHandler := NewUserHandler(s.Users, s.Posts, s.Social)
	postHandler := NewPostHandler(s.Posts)
	socialHandler := NewSocialHandler(s.Social)
	avatarHandler := NewAvatarHandler(s.Avatars)

	optional := func(h http.HandlerFunc) http.Handler { return OptionalAuth(s.Auth, h) }
	required := func(h http.HandlerFunc) http.Handler { return RequireAuth(s.Auth, h) }
	limited := func(h http.Handler) http.Handler {
		if s.Limiter == nil {
			return h
		}
		return RateLimit(s.Limiter, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz(s.DB))
	mux.Handle("GET /static/", http.FileServerFS(view.Static))
	mux.HandleFunc("GET /uploads/{key}", avatarHandler.HandleServe)

	// Public pages
	mux.Handle("GET /{$}", optional(userHandler.HandleHome))
	mux.Handle("GET /home", optional(userHandler.HandleHome))
	mux.Handle("GET /about", optional(HandleAbout))
	mux.Handle("GET /user/{username}", optional(userHandler.HandleProfile))
	mux.Handle("GET /post/{id}", optional(postHandler.HandleView))

	// Auth
	mux.Handle("GET /signup", optional(authHandler.HandleSignupPage))
	mux.Handle("POST /signup", limited(optional(authHandler.HandleSignup)))
	mux.Handle("GET /login", optional(authHandler.HandleLoginPage))
	mux.Handle("POST /login", limited(optional(authHandler.HandleLogin)))
	mux.HandleFunc("GET /logout", authHandler.HandleLogout)
	mux.HandleFunc("POST /logout", authHandler.HandleLogout)

	// Account
	mux.Handle("GET /account", required(accountHandler.HandleAccountPage))
	mux.Handle("POST /account", required(accountHandler.HandleUpdateAccount))
	mux.Handle("POST /user/{id}/delete", required(accountHandler.HandleDeleteAccount))

	// Posts
	mux.Handle("GET /post/new", required(postHandler.HandleNewPage))
	mux.Handle("POST /post/new", required(postHandler.HandleCreate))
	mux.Handle("GET /post/{id}/update", required(postHandler.HandleEditPage))
	mux.Handle("POST /post/{id}/update", required(postHandler.HandleUpdate))
	mux.Handle("POST /post/{id}/delete", required(postHandler.HandleDelete))

	// Social graph and feed
	mux.Handle("POST /follow/{username}", required(socialHandler.HandleFollow))
	mux.Handle("POST /unfollow/{username}", required(socialHandler.HandleUnfollow))
	mux.Handle("GET /matched", required(socialHandler.HandleMatched))
	mux.Handle("GET /matched/more", required(socialHandler.HandleMatchedMore))

	mux.Handle("/", optional(HandleNotFound))
}
