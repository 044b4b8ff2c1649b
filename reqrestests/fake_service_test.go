package reqrestests

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// fakeReqres answers like the hosted reqres service, for a fixed number of users. It ignores
// the delay parameter.
type fakeReqres struct {
	totalUsers int
	mux        *http.ServeMux
}

func newFakeReqres(totalUsers int) *fakeReqres {
	f := &fakeReqres{totalUsers: totalUsers, mux: http.NewServeMux()}
	f.mux.HandleFunc("GET /api/users", f.listUsers)
	f.mux.HandleFunc("GET /api/users/{id}", f.getUser)
	f.mux.HandleFunc("POST /api/users", f.echo(http.StatusCreated, "createdAt"))
	f.mux.HandleFunc("PUT /api/users", f.echo(http.StatusOK, "updatedAt"))
	f.mux.HandleFunc("PATCH /api/users", f.echo(http.StatusOK, "updatedAt"))
	f.mux.HandleFunc("PUT /api/users/{id}", f.echo(http.StatusOK, "updatedAt"))
	f.mux.HandleFunc("PATCH /api/users/{id}", f.echo(http.StatusOK, "updatedAt"))
	f.mux.HandleFunc("DELETE /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", jsonContentType)
		w.WriteHeader(http.StatusNoContent)
	})
	f.mux.HandleFunc("GET /api/unknown", f.listResources)
	f.mux.HandleFunc("GET /api/unknown/{id}", f.getResource)
	f.mux.HandleFunc("POST /api/register", f.auth(true))
	f.mux.HandleFunc("POST /api/login", f.auth(false))
	f.mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return f
}

func (f *fakeReqres) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (f *fakeReqres) user(r *http.Request, id int) map[string]interface{} {
	if id == 2 {
		return map[string]interface{}{
			"id":         2,
			"email":      "janet.weaver@reqres.in",
			"first_name": "Janet",
			"last_name":  "Weaver",
			"avatar":     "http://" + r.Host + "/img/faces/2-image.jpg",
		}
	}
	return map[string]interface{}{
		"id":         id,
		"email":      "user" + strconv.Itoa(id) + "@reqres.in",
		"first_name": "First" + strconv.Itoa(id),
		"last_name":  "Last" + strconv.Itoa(id),
		"avatar":     "http://" + r.Host + "/img/faces/" + strconv.Itoa(id) + "-image.jpg",
	}
}

func intParam(r *http.Request, name string, defaultValue int) int {
	if n, err := strconv.Atoi(r.URL.Query().Get(name)); err == nil {
		return n
	}
	return defaultValue
}

func (f *fakeReqres) listUsers(w http.ResponseWriter, r *http.Request) {
	page := intParam(r, "page", 1)
	perPage := intParam(r, "per_page", defaultPerPage)
	data := []interface{}{}
	for id := (page-1)*perPage + 1; id <= page*perPage && id <= f.totalUsers; id++ {
		data = append(data, f.user(r, id))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"page":        page,
		"per_page":    perPage,
		"total":       f.totalUsers,
		"total_pages": (f.totalUsers + perPage - 1) / perPage,
		"data":        data,
	})
}

func (f *fakeReqres) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 || id > f.totalUsers {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": f.user(r, id)})
}

var fakeResources = []map[string]interface{}{
	{"id": 1, "name": "cerulean", "year": 2000, "color": "#98B2D1", "pantone_value": "15-4020"},
	{"id": 2, "name": "fuchsia rose", "year": 2001, "color": "#C74375", "pantone_value": "17-2031"},
	{"id": 3, "name": "true red", "year": 2002, "color": "#BF1932", "pantone_value": "19-1664"},
	{"id": 4, "name": "aqua sky", "year": 2003, "color": "#7BC4C4", "pantone_value": "14-4811"},
	{"id": 5, "name": "tigerlily", "year": 2004, "color": "#E2583E", "pantone_value": "17-1456"},
	{"id": 6, "name": "blue turquoise", "year": 2005, "color": "#53B0AE", "pantone_value": "15-5217"},
}

func (f *fakeReqres) listResources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"page": 1, "data": fakeResources})
}

func (f *fakeReqres) getResource(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 || id > len(fakeResources) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": fakeResources[id-1]})
}

func (f *fakeReqres) echo(status int, timestampKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if status == http.StatusCreated {
			body["id"] = "123"
		}
		body[timestampKey] = time.Now().UTC().Format(time.RFC3339)
		writeJSON(w, status, body)
	}
}

func (f *fakeReqres) auth(register bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch {
		case body.Email == "":
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMissingEmail})
		case body.Password == "":
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMissingPassword})
		case register:
			writeJSON(w, http.StatusOK, map[string]interface{}{"id": 4, "token": "QpwL5tke4Pnpja7X4"})
		default:
			writeJSON(w, http.StatusOK, map[string]string{"token": "QpwL5tke4Pnpja7X4"})
		}
	}
}
