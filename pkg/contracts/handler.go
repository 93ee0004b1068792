package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every feature handler that exposes routes.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
