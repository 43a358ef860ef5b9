package api

import (
	"net/http"
	"strings"

	"schemagen/internal/dsl"
	"schemagen/internal/pg"
	"schemagen/internal/reference"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type reloadReq struct {
	DSLRoot        string `json:"dsl_root"`         // директория с *.dsl
	OptionSetsRoot string `json:"option_sets_root"` // директория со справочниками вариантов
}

// POST /api/admin/reload — перечитать DSL и справочники, перекомпилировать.
// При любой ошибке текущая ревизия остаётся.
func AdminReloadHandler(storage *Storage, defaultDSL, defaultOptionSets string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reloadReq
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
				return
			}
		}

		dslRoot := strings.TrimSpace(req.DSLRoot)
		if dslRoot == "" {
			dslRoot = defaultDSL
		}
		optionSetsRoot := strings.TrimSpace(req.OptionSetsRoot)
		if optionSetsRoot == "" {
			optionSetsRoot = defaultOptionSets
		}

		// 1) читаем новые сущности и справочники
		entities, err := dsl.LoadAllEntities(dslRoot)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "DSL load error", "details": err.Error()})
			return
		}
		optionSets, err := reference.LoadOptionSetCatalog(optionSetsRoot)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Option sets load error", "details": err.Error()})
			return
		}

		// 2) компиляция и атомарная замена
		rev, err := storage.Replace(entities, optionSets)
		if err != nil {
			compileError(c, err)
			return
		}

		issues := SchemaLint(entities, optionSets, storage.Options().IncludeLegacySystemModel)
		if issues == nil {
			issues = []SchemaIssue{}
		}
		c.JSON(http.StatusOK, gin.H{
			"ok":             true,
			"revision":       rev,
			"dslRoot":        dslRoot,
			"optionSetsRoot": optionSetsRoot,
			"optionSets":     len(optionSets),
			"issues":         issues,
		})
	}
}

// POST /api/admin/apply — применить DDL текущей ревизии к базе
func AdminApplyHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		if storage.DB == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not configured"})
			return
		}
		rev := storage.Current()
		if rev.DDLError != "" {
			c.JSON(http.StatusConflict, gin.H{"error": "DDL unavailable", "details": rev.DDLError})
			return
		}
		applied, err := pg.ApplyDDL(c.Request.Context(), storage.DB, rev.DDL, storage.log)
		if err != nil {
			storage.log.Error("DDL apply failed", zap.String("revision", rev.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DDL apply failed", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"ok":         true,
			"revision":   rev.ID,
			"statements": len(rev.DDL),
			"executed":   applied,
		})
	}
}
