package http

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/config"
	"shop-backend/internal/http/controller"
	"shop-backend/internal/http/middleware"
)

// InitRouter wires the API routes onto the gin engine. uploadsDir is the
// local uploads directory to serve statically; empty when the object
// storage backend is active.
func InitRouter(conf *config.Config, server *gin.Engine, authCtr *controller.AuthController,
	productCtr *controller.ProductController, verifier middleware.TokenVerifier, uploadsDir string) *gin.Engine {
	// Recovery keeps a panicking handler from taking the server down.
	server.Use(middleware.Recovery())
	server.Use(middleware.CORS())

	server.GET("/ping", controller.Ping)

	if uploadsDir != "" {
		server.Static("/uploads", uploadsDir)
	}

	api := server.Group("/api")
	{
		api.POST("/register", authCtr.Register)
		api.POST("/login", authCtr.Login)
		api.GET("/products", productCtr.ListProducts)

		// Bearer auth on product mutations is opt-in via config.
		mutations := api.Group("")
		if conf.ProtectProducts {
			mutations.Use(middleware.RequireAuth(verifier))
		}
		mutations.POST("/products", productCtr.CreateProduct)
		mutations.PUT("/products/:id", productCtr.UpdateProduct)
		mutations.DELETE("/products/:id", productCtr.DeleteProduct)
	}

	return server
}
