package api

import (
	"database/sql"
	"net/http"

	"github.com/nettbureau/pipedrive-leads/internal/api/handlers"
	"github.com/nettbureau/pipedrive-leads/internal/client"
	"github.com/nettbureau/pipedrive-leads/internal/repository"
	"github.com/nettbureau/pipedrive-leads/internal/service"
)

func SetupRouter(db *sql.DB, crmClient client.CRMClient, logger service.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	submissionRepo := repository.NewSubmissionRepository(db)

	leadService := service.NewLeadService(crmClient, logger)
	submissionService := service.NewSubmissionService(leadService, submissionRepo, logger)

	leadHandler := handlers.NewLeadHandler(submissionService, leadService)

	mux.HandleFunc("POST /leads", leadHandler.CreateLead)
	mux.HandleFunc("GET /leads/{id}", leadHandler.GetLead)
	mux.HandleFunc("GET /leads", leadHandler.ListLeads)
	mux.HandleFunc("GET /options", leadHandler.GetOptions)

	return mux
}
