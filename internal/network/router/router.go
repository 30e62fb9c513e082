package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/velomark/fulfillment/internal/client"
	"github.com/velomark/fulfillment/internal/config"
	"github.com/velomark/fulfillment/internal/network/handlers"
	"github.com/velomark/fulfillment/internal/network/middleware"
	"github.com/velomark/fulfillment/internal/notify"
	"github.com/velomark/fulfillment/internal/services"
	"github.com/velomark/fulfillment/internal/storage"
)

type Router struct {
	Config    config.Config
	Identity  *services.Identity
	Workflow  *services.Workflow
	Unifier   *services.Unifier
	Bulk      *services.Bulk
	Reminders *services.Reminders
}

func NewRouter(config config.Config, storage storage.IStorage) *Router {
	dispatcher := notify.NewMailerDispatcher(
		client.NewMailerClient(config.External.MailerAddr, &http.Client{}))
	payments := client.NewPaymentClient(config.External.PaymentAddr, &http.Client{})
	reminders := services.NewReminders(storage, dispatcher, config.Jobs.BatchSize)
	workflow := services.NewWorkflow(storage, dispatcher, payments, reminders)

	return &Router{
		Config:    config,
		Identity:  services.NewIdentity(config, storage),
		Workflow:  workflow,
		Unifier:   services.NewUnifier(storage),
		Bulk:      services.NewBulk(workflow),
		Reminders: reminders,
	}
}

func (router *Router) HandleRouter() chi.Router {
	ja := router.Identity.GetTokenAuth()
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LogHandle)
		r.Post("/auth/login", handlers.LoginHandler(router.Identity))
		// подача заявки доступна без токена (делает покупатель с витрины)
		r.Post("/applications", handlers.SubmitApplicationHandler(router.Workflow))
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(jwtauth.Authenticator(ja))
			r.Get("/orders", handlers.ListOrdersHandler(router.Unifier))
			r.Post("/applications/{id}/events", handlers.TransitionHandler(router.Workflow))
			r.Post("/applications/bulk", handlers.BulkHandler(router.Bulk))
			r.Post("/reminders/sweep", handlers.SweepHandler(router.Reminders))
		})
	})
	return r
}
