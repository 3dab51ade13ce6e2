package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/ballotkeeper/internal/logging"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/metrics"
)

// NewRouter wires every route. m may be nil to skip metrics.
func NewRouter(api *API, log logging.Logger, m *metrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	r.Use(requestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	g := r.Group("/api")
	g.POST("/auth/login", api.login)

	p := g.Group("", requireAuth(api.Auth))
	p.GET("/elections", api.listElections)
	p.POST("/elections", api.createElection)
	p.PUT("/elections/:id", api.updateElection)

	p.GET("/candidates", api.listCandidates)
	p.POST("/candidates", api.createCandidate)
	p.POST("/candidates/image-upload-url", api.candidateImageUploadURL)
	p.DELETE("/candidates/:id", api.deleteCandidate)

	p.GET("/voters", api.listVoters)
	p.POST("/voters", api.createVoter)

	p.GET("/token-batches", api.listTokenBatches)
	p.POST("/token-batches/generate", api.generateTokens)
	p.DELETE("/token-batches/:id", api.deleteTokenBatch)
	p.DELETE("/tokens/:id", api.deleteToken)

	p.GET("/results", api.listResults)

	return r
}
