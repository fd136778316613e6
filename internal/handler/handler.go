package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/javialvarezdrive/gym-policia-local/internal/booking"
	"github.com/javialvarezdrive/gym-policia-local/internal/config"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	service     *booking.Service
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, service *booking.Service, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		service:     service,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/activities", func(r chi.Router) {
		r.Post("/", h.CreateActivity)
		r.Get("/", h.ListActivities)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.activityCtx)
			r.Get("/", h.GetActivity)
			r.Patch("/", h.UpdateActivity)
			r.Delete("/", h.DeleteActivity)
		})
	})

	h.Mux.Route("/shifts", func(r chi.Router) {
		r.Post("/", h.CreateShift)
		r.Get("/", h.ListShifts)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.shiftCtx)
			r.Get("/", h.GetShift)
			r.Patch("/", h.UpdateShift)
			r.Delete("/", h.DeleteShift)
		})
	})

	h.Mux.Route("/agents", func(r chi.Router) {
		r.Post("/", h.RegisterAgent)
		r.Get("/", h.ListAgents)
		r.Get("/badge/{nip}", h.GetAgentByBadge)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.agentCtx)
			r.Get("/", h.GetAgent)
			r.Patch("/", h.UpdateAgent)
			r.Delete("/", h.DeleteAgent)
		})
	})

	h.Mux.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/", h.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.sessionCtx)
			r.Get("/", h.GetSession)
			r.Delete("/", h.CancelSession)
			r.Route("/attendees", func(r chi.Router) {
				r.Post("/", h.AddAttendee)
				r.Get("/", h.ListAttendees)
				r.Delete("/{agentID}", h.RemoveAttendee)
			})
		})
	})

	h.Mux.Route("/dashboard", func(r chi.Router) {
		r.Get("/participation", h.Participation)
		r.Get("/sections", h.ParticipationBySection)
		r.Get("/groups", h.ParticipationByGroup)
		r.Get("/least-active", h.LeastActive)
	})
}
