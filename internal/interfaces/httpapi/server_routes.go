package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/courses/search", RequireAuth(verifier, http.HandlerFunc(handler.SearchCourses)))
	mux.Handle("GET /v1/courses/{courseID}", RequireAuth(verifier, http.HandlerFunc(handler.GetCourse)))

	mux.Handle("POST /v1/rounds", RequireAuth(verifier, http.HandlerFunc(handler.StartRound)))
	mux.Handle("GET /v1/rounds/{roundID}", RequireAuth(verifier, http.HandlerFunc(handler.GetRound)))
	mux.Handle("POST /v1/rounds/{roundID}/holes", RequireAuth(verifier, http.HandlerFunc(handler.RecordHoleScore)))
	mux.Handle("POST /v1/rounds/{roundID}/complete", RequireAuth(verifier, http.HandlerFunc(handler.CompleteRound)))
	mux.Handle("GET /v1/rounds/{roundID}/insights", RequireAuth(verifier, http.HandlerFunc(handler.GetRoundInsights)))

	mux.Handle("POST /v1/shots/preview", RequireAuth(verifier, http.HandlerFunc(handler.PreviewShot)))
	mux.Handle("POST /v1/rounds/{roundID}/shots", RequireAuth(verifier, http.HandlerFunc(handler.RecordShot)))
	mux.Handle("GET /v1/rounds/{roundID}/shots", RequireAuth(verifier, http.HandlerFunc(handler.ListRoundShots)))

	mux.Handle("GET /v1/clubs/{club}/stats", RequireAuth(verifier, http.HandlerFunc(handler.GetClubStats)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recap-backfill", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecapBackfillJob)))
}
