package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ===== META HANDLERS =====

type metaEntityListItem struct {
	Entity string `json:"entity"`
	Fields int    `json:"fields"`
}

// GET /api/meta — сущности в порядке компиляции
func MetaListHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		entities, _ := storage.Snapshot()
		out := make([]metaEntityListItem, 0, len(entities))
		for _, e := range entities {
			out = append(out, metaEntityListItem{Entity: e.Name, Fields: len(e.Fields)})
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/meta/:entity — поля в формате слоя моделирования
func MetaEntityHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, ok := storage.FindEntity(c.Param("entity"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

// GET /api/optionsets/:name
func MetaOptionSetHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		_, optionSets := storage.Snapshot()
		set, ok := optionSets[name]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Option set not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"name":  name,
			"codes": set.Codes(),
			"items": set.Items,
		})
	}
}
