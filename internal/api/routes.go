package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/xplusplusai/fo-semantic-mcp/internal/api/middleware"
	"github.com/xplusplusai/fo-semantic-mcp/internal/models"
)

const OpenAPIPath = "/api/v1/openapi.json"

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/search").
			To(handler.Search).
			Doc("Semantic search over Dynamics 365 F&O artifacts").
			Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
			Reads(models.SearchInput{}).
			Writes(models.SearchResult{}).
			Returns(200, "OK", models.SearchResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(401, "Unauthorized", middleware.ErrorResponse{}).
			Returns(408, "Search Timeout", middleware.ErrorResponse{}).
			Returns(429, "Rate Limited", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}).
			Returns(502, "Bad Gateway", middleware.ErrorResponse{}))

	container.Add(ws)
}

// RegisterOpenAPI serves the OpenAPI document for every web service already
// registered on container.
func RegisterOpenAPI(container *restful.Container, version string) {
	config := restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     OpenAPIPath,
		PostBuildSwaggerObjectHandler: func(swo *spec.Swagger) {
			enrichSwaggerObject(swo, version)
		},
	}
	container.Add(restfulspec.NewOpenAPIService(config))
}

func enrichSwaggerObject(swo *spec.Swagger, version string) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "FO Semantic Search API",
			Description: "HTTP facade over the FO-Index semantic search for Dynamics 365 F&O artifacts",
			Version:     version,
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "search", Description: "Artifact search"}},
	}
}
