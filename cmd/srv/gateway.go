package main

import (
	"net/http"

	"github.com/rewardlab/backend/internal/domain"
	"github.com/rewardlab/backend/internal/middleware"
	"github.com/rewardlab/backend/pkg/api"
	"github.com/rewardlab/backend/pkg/kafka"
	"github.com/rewardlab/backend/pkg/router"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startGateway(ct *cli.Context) error {
	s.loadDatabase()
	s.loadRepos()
	s.loadTokenEngine()
	s.publisher = kafka.NewPublisher("gateway", []string{s.configs.Kafka.Addr})

	eventCaller := api.NewGenerator(s.configs.EventServer.Endpoint)
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.tokenEngine)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.gatewayDomain = domain.NewGatewayDomain(
		eventCaller, s.publisher, s.configs.Kafka.CommandTopic, s.userRepo)

	r := router.New(s.db, s.configs, s.logger)
	r.AddCloser(middleware.Logger())

	public := r.Branch()
	public.Before(middleware.OptionalAuthenticate(s.tokenEngine))
	router.POST(public, "/register", s.authDomain.Register)
	router.POST(public, "/login", s.authDomain.Login)
	router.GET(public, "/getEvent", s.gatewayDomain.GetEvent)
	router.GET(public, "/getEvents", s.gatewayDomain.GetListEvent)
	router.GET(public, "/getActiveEvents", s.gatewayDomain.GetActiveEvents)
	router.GET(public, "/getReward", s.gatewayDomain.GetReward)
	router.GET(public, "/getRewards", s.gatewayDomain.GetListReward)

	authed := r.Branch()
	authed.Before(middleware.Authenticate(s.tokenEngine))
	router.GET(authed, "/getUser", s.userDomain.Get)
	router.GET(authed, "/getUsers", s.userDomain.GetList)
	router.POST(authed, "/updateUser", s.userDomain.Update)
	router.POST(authed, "/deleteUser", s.userDomain.Delete)

	router.POST(authed, "/createEvent", s.gatewayDomain.CreateEvent)
	router.POST(authed, "/updateEvent", s.gatewayDomain.UpdateEvent)
	router.POST(authed, "/deleteEvent", s.gatewayDomain.DeleteEvent)
	router.POST(authed, "/createReward", s.gatewayDomain.CreateReward)
	router.POST(authed, "/claimReward", s.gatewayDomain.Claim)
	router.POST(authed, "/reviewRewardRequest", s.gatewayDomain.Review)
	router.GET(authed, "/getRewardRequest", s.gatewayDomain.GetRewardRequest)
	router.GET(authed, "/getRewardRequests", s.gatewayDomain.GetListRewardRequest)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   s.configs.Gateway.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    s.configs.Gateway.Address(),
		Handler: corsHandler.Handler(r.Handler()),
	}

	s.logger.Infof("Starting gateway on port %s", s.configs.Gateway.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}
