// Package server exposes the predictor through a form-based web app and a
// small JSON API. Artifacts are loaded once and shared read-only across
// requests.
package server

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/predict"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/preprocess"
)

// Server wires the predictor into a gin engine.
type Server struct {
	predictor *predict.Predictor
	cache     *gocache.Cache
	engine    *gin.Engine
}

// New builds the router around an already-loaded predictor.
func New(p *predict.Predictor) *Server {
	s := &Server{
		predictor: p,
		cache:     gocache.New(5*time.Minute, 10*time.Minute),
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", s.form)
	r.POST("/predict", s.predictForm)
	r.POST("/api/predict", s.predictJSON)
	r.GET("/api/model", s.modelInfo)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine = r
	return s
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error { return s.engine.Run(addr) }

func (s *Server) form(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Options": s.vocabularies(),
		"Meta":    s.predictor.Metadata(),
	})
}

func (s *Server) predictForm(c *gin.Context) {
	var in Input
	if err := c.ShouldBind(&in); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": "invalid form submission"})
		return
	}
	result, status, err := s.run(&in)
	if err != nil {
		c.HTML(status, "error.html", gin.H{"Error": err.Error()})
		return
	}
	c.HTML(http.StatusOK, "result.html", gin.H{
		"Result": result,
		"Score":  fmt.Sprintf("%.1f", result.Score),
	})
}

func (s *Server) predictJSON(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, status, err := s.run(&in)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) modelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.predictor.Metadata())
}

// run validates the input, consults the cache and invokes the predictor.
// Identical submissions within the cache window reuse the first result.
func (s *Server) run(in *Input) (*predict.Result, int, error) {
	record, err := in.Validate()
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	key := in.cacheKey()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*predict.Result), http.StatusOK, nil
	}
	result, err := s.predictor.Predict(record)
	if err != nil {
		var unknown *preprocess.UnknownCategoryError
		if errors.As(err, &unknown) {
			return nil, http.StatusUnprocessableEntity, err
		}
		return nil, http.StatusInternalServerError, err
	}
	s.cache.Set(key, result, gocache.DefaultExpiration)
	return result, http.StatusOK, nil
}

// vocabularies returns the select options per categorical field, taken from
// the fitted encoders so the form can only offer encodable values.
func (s *Server) vocabularies() map[string][]string {
	out := make(map[string][]string)
	for field, enc := range s.predictor.Encoders() {
		out[field] = enc.Classes
	}
	return out
}
