package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tordrt/umlgen"
	"github.com/tordrt/umlgen/internal/apperrors"
	"github.com/tordrt/umlgen/internal/artifact"
	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/interchange"
	"github.com/tordrt/umlgen/internal/vision"
)

func (s *Server) maxBody() int64 {
	if s.cfg.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return s.cfg.MaxUploadMB << 20
}

func (s *Server) readBody(c *gin.Context) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody()))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return data, nil
}

// bindSnapshot reads the editor snapshot from the request body.
func (s *Server) bindSnapshot(c *gin.Context) (*diagram.Snapshot, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody())
	var snap diagram.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("invalid diagram snapshot: %w", err))
		return nil, false
	}
	return &snap, true
}

func statusFor(err error) int {
	var verr *vision.Error
	switch {
	case errors.Is(err, apperrors.ErrUnknownTarget):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrEmptyDiagram), errors.Is(err, apperrors.ErrInvalidDocument):
		return http.StatusUnprocessableEntity
	case errors.As(err, &verr):
		switch verr.Kind {
		case vision.KindTimeout:
			return http.StatusGatewayTimeout
		case vision.KindUnavailable:
			return http.StatusBadGateway
		}
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"targets": umlgen.Targets(),
		"vision":  s.importer != nil,
	})
}

// generate handles POST /api/v1/generate/:target.
//
// Query parameters: project, package, format (docs and interchange-export),
// base_url, and download=zip to receive the artifacts as an archive.
func (s *Server) generate(c *gin.Context) {
	snap, ok := s.bindSnapshot(c)
	if !ok {
		return
	}

	opts := &umlgen.Options{
		Target:            c.Param("target"),
		ProjectName:       c.Query("project"),
		BasePackage:       c.DefaultQuery("package", s.gen.BasePackage),
		DocsFormat:        c.Query("format"),
		InterchangeFormat: c.Query("format"),
		BaseURL:           c.DefaultQuery("base_url", s.gen.BaseURL),
		Logger:            s.logger,
	}
	res := umlgen.Generate(c.Request.Context(), snap, opts)
	if !res.Success {
		c.AbortWithStatusJSON(statusFor(res.Err), res)
		return
	}

	if c.Query("download") == "zip" {
		name := strings.ReplaceAll(res.Target, ",", "-") + ".zip"
		c.Header("Content-Type", "application/zip")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Status(http.StatusOK)
		if err := artifact.WriteZip(res.Bundle, c.Writer); err != nil {
			s.logger.Error("failed to stream archive", zap.Error(err))
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// importInterchange handles POST /api/v1/interchange/import. The body is a
// document in the format named by ?format (json by default). Reading never
// fails; problems come back as warnings.
func (s *Server) importInterchange(c *gin.Context) {
	data, err := s.readBody(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	format := requestFormat(c)
	snap, warnings := umlgen.ImportDocument(data, format)
	counts := umlgen.Counts{Classes: len(snap.Classes), Relationships: len(snap.Links)}
	success(c, http.StatusOK, counts, snap, warnings,
		fmt.Sprintf("imported %d classes and %d relationships", counts.Classes, counts.Relationships))
}

// exportInterchange handles POST /api/v1/interchange/export.
func (s *Server) exportInterchange(c *gin.Context) {
	snap, ok := s.bindSnapshot(c)
	if !ok {
		return
	}
	format := requestFormat(c)
	d, warnings := diagram.Extract(snap, s.logger)
	doc := interchange.Export(d)
	counts := umlgen.Counts{Classes: len(doc.Classes), Relationships: len(doc.Relationships)}

	if format == interchange.FormatYAML {
		data, err := interchange.Encode(doc, format)
		if err != nil {
			fail(c, http.StatusInternalServerError, err)
			return
		}
		c.Data(http.StatusOK, "application/yaml", data)
		return
	}
	success(c, http.StatusOK, counts, doc, warnings,
		fmt.Sprintf("exported %d classes and %d relationships", counts.Classes, counts.Relationships))
}

// importVision handles POST /api/v1/vision/import with a multipart "image".
func (s *Server) importVision(c *gin.Context) {
	if s.importer == nil {
		fail(c, http.StatusServiceUnavailable, fmt.Errorf("%w: no provider configured", apperrors.ErrVisionUnavailable))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody())
	fh, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("missing image: %w", err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("failed to open image: %w", err))
		return
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("failed to read image: %w", err))
		return
	}

	snap, warnings, err := umlgen.ImportImage(c.Request.Context(), s.importer, data)
	if err != nil {
		s.logger.Warn("vision import failed", zap.Error(err))
		fail(c, statusFor(err), err)
		return
	}
	counts := umlgen.Counts{Classes: len(snap.Classes), Relationships: len(snap.Links)}
	success(c, http.StatusOK, counts, snap, warnings,
		fmt.Sprintf("recognized %d classes and %d relationships", counts.Classes, counts.Relationships))
}

func requestFormat(c *gin.Context) string {
	if f := c.Query("format"); f != "" {
		return strings.ToLower(f)
	}
	if strings.Contains(c.ContentType(), "yaml") {
		return interchange.FormatYAML
	}
	return interchange.FormatJSON
}
