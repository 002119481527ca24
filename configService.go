package main

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type statusResponse struct {
	Response string   `json:"response"`
	Error    string   `json:"error,omitempty"`
	Status   *reading `json:"status,omitempty"`
}

// apiHandler - settings for the thing that handles HTTP requests
type apiHandler struct {
	rt     runtimeConfig
	secret string
	user   string
	realm  string
}

func newHandler(rt runtimeConfig) apiHandler {
	secret := rt.settings.GetString(sHTTPSecret)
	if secret == "" {
		// nothing configured, make one up and say what it is
		secret = rt.clock.Now().Format("150405.000000")
		rt.logger.Printf("No %s set, using %s", sHTTPSecret, secret)
	}
	return apiHandler{
		rt:     rt,
		secret: secret,
		user:   "segclock",
		realm:  "segclock",
	}
}

// BasicAuth - provide a middleware to authenticate users
func (m *apiHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(m.user)) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(m.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+m.realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *apiHandler) getStatus() statusResponse {
	snap := m.rt.status.snapshot()
	if snap.RTCError != "" {
		return statusResponse{Response: "BAD", Error: snap.RTCError, Status: &snap}
	}
	return statusResponse{Response: "OK", Status: &snap}
}

func writeAnswer(w http.ResponseWriter, sr statusResponse) {
	output, _ := json.Marshal(sr)
	w.Header().Set("Content-Type", "application/json")
	w.Write(output)
}

func (m *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	writeAnswer(w, m.getStatus())
}

func (m *apiHandler) rootHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api/status", http.StatusMovedPermanently)
}

func newRouter(handler *apiHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(handler.BasicAuth)
	r.HandleFunc("/api/status", handler.apiStatus).Methods("GET")
	r.HandleFunc("/", handler.rootHandler)
	return r
}

func startConfigService(rt runtimeConfig) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		runConfigService(rt)
	}()
}

func runConfigService(rt runtimeConfig) {
	rt.logger = &threadLogger{name: "Config"}

	handler := newHandler(rt)
	rt.configService.launch(&handler, rt.settings.GetString(sHTTPAddr))

	<-rt.comms.quit
	rt.logger.Println("quit from config service")
	rt.configService.stop()
}
