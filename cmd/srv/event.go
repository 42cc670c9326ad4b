package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rewardlab/backend/internal/command"
	"github.com/rewardlab/backend/internal/domain"
	"github.com/rewardlab/backend/internal/middleware"
	"github.com/rewardlab/backend/pkg/kafka"
	"github.com/rewardlab/backend/pkg/pubsub"
	"github.com/rewardlab/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startEvent(ct *cli.Context) error {
	s.loadDatabase()
	s.loadRepos()
	s.loadTokenEngine()
	s.loadRedis()

	s.eventDomain = domain.NewEventDomain(
		s.eventRepo, s.rewardRepo, s.rewardRequestRepo, s.userRepo, s.redisClient)
	s.rewardDomain = domain.NewRewardDomain(s.rewardRepo, s.eventRepo, s.userRepo)
	s.rewardRequestDomain = domain.NewRewardRequestDomain(
		s.rewardRequestRepo, s.rewardRepo, s.eventRepo, s.userRepo)

	dispatcher := command.NewDispatcher()
	command.RegisterRewardRequestHandlers(dispatcher, s.rewardRequestDomain)
	command.RegisterEventHandlers(dispatcher, s.eventDomain)

	// The consumer session context carries nothing, dispatch with the service
	// context instead so handlers see the database and logger.
	s.subscriber = kafka.NewSubscriber(
		"event-service",
		[]string{s.configs.Kafka.Addr},
		[]string{s.configs.Kafka.CommandTopic},
		func(_ context.Context, pack *pubsub.Pack, t time.Time) {
			dispatcher.Dispatch(s.ctx, pack, t)
		},
	)
	s.subscriber.Subscribe(s.ctx)

	r := router.New(s.db, s.configs, s.logger)
	r.AddCloser(middleware.Logger())

	public := r.Branch()
	public.Before(middleware.OptionalAuthenticate(s.tokenEngine))
	router.GET(public, "/getEvent", s.eventDomain.Get)
	router.GET(public, "/getEvents", s.eventDomain.GetList)
	router.GET(public, "/getActiveEvents", s.eventDomain.GetActive)
	router.GET(public, "/getReward", s.rewardDomain.Get)
	router.GET(public, "/getRewards", s.rewardDomain.GetList)

	authed := r.Branch()
	authed.Before(middleware.Authenticate(s.tokenEngine))
	router.POST(authed, "/createEvent", s.eventDomain.Create)
	router.POST(authed, "/updateEvent", s.eventDomain.Update)
	router.POST(authed, "/deleteEvent", s.eventDomain.Delete)
	router.POST(authed, "/createReward", s.rewardDomain.Create)
	router.POST(authed, "/claimReward", s.rewardRequestDomain.Claim)
	router.POST(authed, "/reviewRewardRequest", s.rewardRequestDomain.Review)
	router.GET(authed, "/getRewardRequest", s.rewardRequestDomain.Get)
	router.GET(authed, "/getRewardRequests", s.rewardRequestDomain.GetList)

	s.server = &http.Server{
		Addr:    s.configs.EventServer.Address(),
		Handler: r.Handler(),
	}

	s.logger.Infof("Starting event service on port %s", s.configs.EventServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}
