package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/dimlight/dimlight-api/docs"
	"github.com/dimlight/dimlight-api/internal/api/handler"
	"github.com/dimlight/dimlight-api/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler        *handler.UserHandler
	sleepRecordHandler *handler.SleepRecordHandler
	insightsHandler    *handler.InsightsHandler
	coachHandler       *handler.CoachHandler
	diaryHandler       *handler.DiaryHandler
	techniqueHandler   *handler.TechniqueHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	sleepRecordHandler *handler.SleepRecordHandler,
	insightsHandler *handler.InsightsHandler,
	coachHandler *handler.CoachHandler,
	diaryHandler *handler.DiaryHandler,
	techniqueHandler *handler.TechniqueHandler,
) *Router {
	return &Router{
		userHandler:        userHandler,
		sleepRecordHandler: sleepRecordHandler,
		insightsHandler:    insightsHandler,
		coachHandler:       coachHandler,
		diaryHandler:       diaryHandler,
		techniqueHandler:   techniqueHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Sleep records (nested under users)
			r.Route("/{userId}/sleep-records", func(r chi.Router) {
				r.Post("/", rt.sleepRecordHandler.Create)
				r.Get("/", rt.sleepRecordHandler.List)
				r.Post("/import", rt.sleepRecordHandler.Import)
				r.Get("/{recordId}", rt.sleepRecordHandler.GetByID)
				r.Patch("/{recordId}", rt.sleepRecordHandler.Update)
				r.Delete("/{recordId}", rt.sleepRecordHandler.Delete)
			})

			// Insights, trends and the AI coach
			r.Route("/{userId}/sleep", func(r chi.Router) {
				r.Get("/insights/weekly", rt.insightsHandler.GetWeekly)
				r.Get("/insights/today", rt.insightsHandler.GetToday)
				r.Get("/trends", rt.insightsHandler.GetTrends)
				r.Get("/score", rt.insightsHandler.GetScoreSeries)
				r.Get("/coach/weekly", rt.coachHandler.GetWeekly)
				r.Post("/coach/feedback", rt.coachHandler.PostFeedback)
			})

			// Sleep diary
			r.Route("/{userId}/diary", func(r chi.Router) {
				r.Put("/", rt.diaryHandler.Upsert)
				r.Get("/", rt.diaryHandler.GetByDate)
				r.Get("/week", rt.diaryHandler.GetWeek)
				r.Get("/all", rt.diaryHandler.GetAll)
			})
		})

		// Relaxation technique catalog
		r.Route("/techniques", func(r chi.Router) {
			r.Get("/", rt.techniqueHandler.List)
			r.Get("/recommended", rt.techniqueHandler.Recommended)
			r.Get("/type/{type}", rt.techniqueHandler.ListByType)
			r.Get("/{techniqueId}", rt.techniqueHandler.GetByID)
		})
	})

	return r
}
