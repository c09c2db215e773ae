// Package api serves the local substate cache over plain http so other
// tooling can read what the scanner has pulled down.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/secretnamebasis/simple-tari/db"
	"github.com/secretnamebasis/simple-tari/substate"
)

var store *db.BboltStore

// Start blocks serving the cache read api on localhost
func Start(port string, backend *db.BboltStore) error {
	store = backend

	r := mux.NewRouter()
	r.HandleFunc("/GetLastScannedVersion", GetLastScannedVersion)
	r.HandleFunc("/GetSubstate", GetSubstate)
	r.HandleFunc("/GetAllSubstates", GetAllSubstates)

	return http.ListenAndServe("localhost:"+port, r)
}

func head(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
}

// Check the scanner's cursor
// http://localhost:8080/GetLastScannedVersion
func GetLastScannedVersion(w http.ResponseWriter, r *http.Request) {
	head(w)
	version, _ := store.GetLastScannedVersion()
	jsonData, _ := json.Marshal(version)
	fmt.Fprint(w, string(jsonData))
}

// One substate by canonical id
// http://localhost:8080/GetSubstate?id=component_deadbeef
func GetSubstate(w http.ResponseWriter, r *http.Request) {
	head(w)
	id := r.URL.Query().Get("id")

	// reject garbage before it hits the store
	if _, err := substate.FromString(id); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		jsonData, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprint(w, string(jsonData))
		return
	}

	rec, err := store.GetSubstate(id)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		jsonData, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprint(w, string(jsonData))
		return
	}
	if rec == nil {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "null")
		return
	}
	jsonData, _ := json.Marshal(rec)
	fmt.Fprint(w, string(jsonData))
}

// Large request
// http://localhost:8080/GetAllSubstates
func GetAllSubstates(w http.ResponseWriter, r *http.Request) {
	head(w)
	jsonData, _ := json.Marshal(store.GetAllSubstates())
	fmt.Fprint(w, string(jsonData))
}
