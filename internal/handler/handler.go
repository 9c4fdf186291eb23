package handler

import (
	"github.com/fleetops-dev/plan-manager/backend/internal/config"
	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	service    *service.Service
	translator ut.Translator
	notifier   Notifier
	tokens     TokenStore

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, svc *service.Service, notifier Notifier, tokens TokenStore) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		service:    svc,
		translator: trans,
		notifier:   notifier,
		tokens:     tokens,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/logout", h.Logout)
			r.Get("/user", h.CurrentUser)
		})
	})

	// everything below requires a logged-in caller; reads are open to every
	// team, mutations are gated by the role ability map
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/routes", func(r chi.Router) {
			r.Get("/", h.GetAllRoutes)
			r.Post("/", h.CreateRoute)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.routeCtx)
				r.Get("/", h.GetRoute)
				r.Patch("/", h.UpdateRoute)
				r.Delete("/", h.DeleteRoute)
			})
		})

		r.Route("/resources", func(r chi.Router) {
			r.Get("/", h.GetAllResources)
			r.Post("/", h.CreateResource)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.resourceCtx)
				r.Get("/", h.GetResource)
				r.Patch("/", h.UpdateResource)
				r.Delete("/", h.DeleteResource)
			})
		})

		r.Route("/planning-requests", func(r chi.Router) {
			r.Get("/", h.GetAllPlanningRequests)
			r.Get("/submitted", h.GetSubmittedPlanningRequests)
			r.Get("/draft", h.GetDraftPlanningRequests)
			r.With(h.requireAbility(domain.AbilityPlanningRequestsCreate)).Post("/", h.CreatePlanningRequest)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.planningRequestCtx)
				r.Get("/", h.GetPlanningRequest)
				r.With(h.requireAbility(domain.AbilityPlanningRequestsUpdate)).Patch("/", h.UpdatePlanningRequest)
				r.With(h.requireAbility(domain.AbilityPlanningRequestsDelete)).Delete("/", h.DeletePlanningRequest)
				r.With(h.requireAbility(domain.AbilityPlanningRequestsSubmit)).Post("/submit", h.SubmitPlanningRequest)
			})
		})

		r.Route("/planning-request-items/{id}", func(r chi.Router) {
			r.Get("/suggested-resources", h.SuggestVersionResources)
		})

		r.Route("/operational-plans", func(r chi.Router) {
			r.Get("/", h.GetAllOperationalPlans)
			r.Get("/active", h.GetActiveOperationalPlans)
			r.With(h.requireAbility(domain.AbilityOperationalPlansCreate)).Post("/", h.CreateOperationalPlan)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.operationalPlanCtx)
				r.Get("/", h.GetOperationalPlan)
				r.With(h.requireAbility(domain.AbilityOperationalPlansCreate)).Post("/versions", h.CreatePlanVersion)
			})
		})

		r.Route("/operational-plan-versions/{id}", func(r chi.Router) {
			r.Use(h.planVersionCtx)
			r.Get("/", h.GetPlanVersion)
			r.With(h.requireAbility(domain.AbilityOperationalPlansActivate)).Post("/activate", h.ActivatePlanVersion)
		})

		r.Route("/execution-events", func(r chi.Router) {
			r.Get("/", h.GetAllExecutionEvents)
			r.With(h.requireAbility(domain.AbilityExecutionEventsCreate)).Post("/", h.RecordExecutionEvent)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.executionEventCtx)
				r.Get("/", h.GetExecutionEvent)
			})
		})
	})
}
