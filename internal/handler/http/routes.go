package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. timeout bounds the lifetime of every request
// context.
func (h *Handler) Init(timeout time.Duration) *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(timeout))
	router.Use(withGZip)
	router.Use(h.withSession)

	h.mountStatic(router)

	router.Get("/", h.home)
	router.Get("/about", h.about)
	router.Get("/version", h.getServerVersion)

	router.Route("/user", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Get("/signup", h.signupPage)
			r.Post("/signup", h.signup)
			r.Get("/signin", h.signinPage)
			r.Post("/signin", h.signin)

			r.Get("/auth/google", h.googleLogin)
			r.Get("/auth/google/callback", h.googleCallback)

			r.Get("/forget-password", h.forgetPasswordPage)
			r.Post("/forget-password", h.forgetPassword)
			r.Get("/verify-otp/{id}", h.verifyOTPPage)
			r.Post("/verify-otp/{id}", h.verifyOTP)
			r.Get("/set-password/{id}", h.setPasswordPage)
			r.Post("/set-password/{id}", h.setPassword)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)

			r.Get("/profile", h.profile)
			r.Get("/signout", h.signout)
			r.Get("/reset-password", h.changePasswordPage)
			r.Post("/reset-password", h.changePassword)
			r.Get("/update-profile", h.updateProfilePage)
			r.Post("/update-profile", h.updateProfile)
			r.Post("/avatar", h.updateAvatar)
			r.Get("/delete-account", h.deleteAccount)
		})
	})

	router.Route("/expense", func(r chi.Router) {
		r.Use(h.requireUser)

		r.Get("/create", h.createExpensePage)
		r.Post("/create", h.createExpense)
		r.Get("/show", h.listExpenses)
		r.Get("/details/{id}", h.expenseDetails)
		r.Get("/delete/{id}", h.deleteExpense)
		r.Get("/update/{id}", h.updateExpensePage)
		r.Post("/update/{id}", h.updateExpense)
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router, h.notFound))

	return router
}

// staticPrefixes are the public directory trees served as files.
var staticPrefixes = []string{"/images", "/stylesheets", "/javascripts"}

// mountStatic serves the public directory (stylesheets, default avatar).
func (h *Handler) mountStatic(router chi.Router) {
	if h.staticDir == "" {
		return
	}

	fileServer := http.FileServer(http.Dir(h.staticDir))
	for _, prefix := range staticPrefixes {
		router.Handle(prefix+"/*", fileServer)
	}
}
