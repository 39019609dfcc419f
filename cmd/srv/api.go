package main

import (
	"net/http"

	"github.com/luckdraw/backend/internal/middleware"
	"github.com/luckdraw/backend/pkg/router"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadPublisher()
	s.loadStorage()
	s.loadMailer()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: corsHandler.Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting server on %s", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/register", s.authDomain.Register)
		router.POST(publicRouter, "/login", s.authDomain.Login)
		router.GET(publicRouter, "/getOrganizationBySlug", s.organizationDomain.GetBySlug)
		router.GET(publicRouter, "/getPrizesBySlug", s.prizeDomain.GetBySlug)
		router.POST(publicRouter, "/submitEntry", s.entryDomain.Submit)
	}

	// These following APIs need authentication.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		// Organization API
		router.GET(authRouter, "/getMyOrganization", s.organizationDomain.GetMy)
		router.POST(authRouter, "/updateOrganization", s.organizationDomain.Update)
		router.POST(authRouter, "/uploadLogo", s.organizationDomain.UploadLogo)

		// Entry API
		router.GET(authRouter, "/getEntry", s.entryDomain.Get)
		router.GET(authRouter, "/getEntries", s.entryDomain.GetList)
		router.POST(authRouter, "/updateEntry", s.entryDomain.Update)
		router.POST(authRouter, "/deleteEntry", s.entryDomain.Delete)

		// Draw API
		router.POST(authRouter, "/drawEntry", s.drawDomain.Draw)
		router.POST(authRouter, "/assignWinner", s.drawDomain.AssignWinner)
		router.POST(authRouter, "/notifyWinner", s.notificationDomain.NotifyWinner)

		// Prize API
		router.POST(authRouter, "/createPrize", s.prizeDomain.Create)
		router.GET(authRouter, "/getPrizes", s.prizeDomain.GetList)
		router.POST(authRouter, "/updatePrize", s.prizeDomain.Update)
		router.POST(authRouter, "/deletePrize", s.prizeDomain.Delete)
	}
}
