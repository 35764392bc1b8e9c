package middleware

import "net/http"

// Step is one stage of a request pipeline. It returns the request to hand to
// the next stage, usually carrying extra context values, or an error that
// ends the pipeline.
type Step func(*http.Request) (*http.Request, error)

// ErrorResponder writes the HTTP response for an error returned by a Step.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// Pipeline runs steps in order before the wrapped handler. The first error
// short-circuits the chain and is passed to onError; later steps and the
// handler are not run.
func Pipeline(onError ErrorResponder, steps ...Step) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, step := range steps {
				var err error
				r, err = step(r)
				if err != nil {
					onError(w, r, err)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
