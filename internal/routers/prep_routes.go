package routers

import (
	"github.com/go-chi/chi/v5"

	"prepagent/internal/handlers"
	"prepagent/internal/middleware"
	"prepagent/internal/models"
)

// Handlers bundles the route targets so wiring stays in one place.
type Handlers struct {
	Interview *handlers.InterviewHandler
	Attempts  *handlers.AttemptHandler
	Review    *handlers.ReviewHandler
	Session   *handlers.SessionHandler
	Analytics *handlers.AnalyticsHandler
	Plans     *handlers.PlanHandler
	Bookmarks *handlers.BookmarkHandler
	Export    *handlers.ExportHandler
}

func PrepRoutes(router *chi.Mux, h Handlers) {
	router.Route("/api/v1/prep", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.ProblemRequest]()).Post("/problem", h.Interview.ProblemHandler)
		r.With(middleware.ValidateRequest[*models.CompanyProblemRequest]()).Post("/problem/company", h.Interview.CompanyProblemHandler)
		r.With(middleware.ValidateRequest[*models.HintRequest]()).Post("/hint", h.Interview.HintHandler)
		r.With(middleware.ValidateRequest[*models.EvaluateRequest]()).Post("/evaluate", h.Interview.EvaluateHandler)

		r.With(middleware.ValidateRequest[*models.HistoryRequest]()).Post("/attempts/history", h.Attempts.HistoryHandler)
		r.Get("/attempts/{attemptID}", h.Attempts.GetHandler)

		r.Get("/review/due/{userID}", h.Review.DueHandler)
		r.With(middleware.ValidateRequest[*models.ReviewCompleteRequest]()).Post("/review/complete/{attemptID}", h.Review.CompleteHandler)

		r.With(middleware.ValidateRequest[*models.MockStartRequest]()).Post("/mock/start", h.Session.StartHandler)
		r.Get("/mock/session/{sessionID}", h.Session.GetHandler)
		r.Get("/mock/session/{sessionID}/problem", h.Session.ProblemHandler)
		r.With(middleware.ValidateRequest[*models.MockSubmitRequest]()).Post("/mock/submit/{sessionID}", h.Session.SubmitHandler)
		r.Post("/mock/complete/{sessionID}", h.Session.CompleteHandler)
		r.Post("/mock/end/{sessionID}", h.Session.EndHandler)
		r.Get("/mock/history/{userID}", h.Session.HistoryHandler)

		r.Get("/analytics/{userID}", h.Analytics.SummaryHandler)

		r.With(middleware.ValidateRequest[*models.StudyPlanRequest]()).Post("/study-plan/generate", h.Plans.GenerateHandler)
		r.Get("/study-plan/{userID}", h.Plans.ListHandler)

		r.With(middleware.ValidateRequest[*models.BookmarkRequest]()).Post("/bookmarks/add", h.Bookmarks.AddHandler)
		r.Get("/bookmarks/{userID}", h.Bookmarks.ListHandler)
		r.Delete("/bookmarks/{bookmarkID}", h.Bookmarks.DeleteHandler)

		r.Get("/export/{userID}/markdown", h.Export.MarkdownHandler)
		r.Get("/export/{userID}/resume-bullets", h.Export.ResumeBulletsHandler)
	})
}
