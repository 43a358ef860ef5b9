package api

import (
	"net/http"
	"strings"

	"schemagen/internal/compiler"
	"schemagen/internal/entity"

	"github.com/gin-gonic/gin"
)

const revisionHeader = "X-Schema-Revision"

// GET /api/schema — текст schema.prisma текущей ревизии
func SchemaHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		rev := storage.Current()
		c.Header(revisionHeader, rev.ID)
		c.String(http.StatusOK, rev.Schema)
	}
}

// GET /api/schema/revision
func RevisionHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, storage.Current())
	}
}

// GET /api/schema/ddl — DDL Postgres; 409, если документ не проецируется
func DDLHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		rev := storage.Current()
		c.Header(revisionHeader, rev.ID)
		if rev.DDLError != "" {
			c.JSON(http.StatusConflict, gin.H{"error": "DDL unavailable", "details": rev.DDLError})
			return
		}
		c.String(http.StatusOK, strings.Join(rev.DDL, "\n\n")+"\n")
	}
}

// GET /api/schema/lint
func LintHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		entities, optionSets := storage.Snapshot()
		issues := SchemaLint(entities, optionSets, storage.Options().IncludeLegacySystemModel)
		if issues == nil {
			issues = []SchemaIssue{}
		}
		c.JSON(http.StatusOK, gin.H{"issues": issues})
	}
}

type compileReq struct {
	Entities []*entity.Entity `json:"entities"`
	// nil — как у сервера
	LegacySystemModel *bool `json:"legacySystemModel"`
}

// POST /api/schema/compile — компиляция присланной модели без сохранения
func CompileHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req compileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON", "details": err.Error()})
			return
		}
		for _, e := range req.Entities {
			if e == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "null entity"})
				return
			}
		}

		opts := storage.Options()
		if req.LegacySystemModel != nil {
			opts.IncludeLegacySystemModel = *req.LegacySystemModel
		}
		out, err := compiler.New(opts, compiler.WithLogger(storage.log)).Compile(req.Entities)
		if err != nil {
			compileError(c, err)
			return
		}
		c.String(http.StatusOK, out)
	}
}
