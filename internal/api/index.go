package api

import (
	"net/http"

	"booklibrary/internal/store"
)

const indexAvailable = `<h1>Hello on my booklibrary API</h1>
<h2>This API has following endpoints</h2>
<p><b>Get a list of all available books</b></p>
<p>Operation: GET, Path: /api/v1/getall call e.g. curl -X GET 'http://localhost:8080/api/v1/getall'</p>
<p><b>Get a book by its isbn number</b></p>
<p>Operation: GET, Path: /api/v1/get_isbn Query-Parameter: isbn (string) call e.g. curl -X GET 'http://localhost:8080/api/v1/get_isbn?isbn=978-3-442-49215-2'</p>
<p><b>Creating a Book given a json with information about author, title, isbn, language</b></p>
<p>Operation: PUT, Path: /api/v1/create Request body: {"author": "string", "title": "string", "lang": "string", "isbn": "string"}</p>
<p>Call e.g. curl -X 'PUT' 'http://localhost:8080/api/v1/create' -H 'accept: application/json' -H 'Content-Type: application/json' -d '{"author": "Cavanagh, Steve", "title": "Thirteen", "lang": "de", "isbn": "978-3-442-49215-2"}'</p>
<p><b>Testing the availability from the microservice</b></p>
<p>Operation: GET, Path: /health Result: {"status": "UP"}</p>
`

const indexUnavailable = `<h1>Hello on my booklibrary API</h1>
<h2>The API is currently not available due to missing database</h2>
`

// indexHandler handles GET /. The page reflects whether the store was reachable at startup.
func indexHandler(handle *store.Handle) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if handle.Connected() {
			_, _ = w.Write([]byte(indexAvailable))
			return
		}
		_, _ = w.Write([]byte(indexUnavailable))
	})
}
