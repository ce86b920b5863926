package handler

import (
	"encoding/json"
	"net/http"
)

var resources = []string{
	"/restaurants",
	"/menu-items/{id}",
	"/cart",
	"/orders",
	"/promotions",
	"/reviews",
	"/favorites",
	"/account",
}

// Handler answers the root path with a short index of the API.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(map[string]any{
		"service":   "QuickBite API",
		"status":    "ok",
		"docs":      "/swagger/index.html",
		"resources": resources,
	})
}
