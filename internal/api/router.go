// api/router.go
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	DSLDir        string
	OptionSetsDir string
}

func NewRouter(storage *Storage, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(storage.log))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/meta", MetaListHandler(storage))
		apiGroup.GET("/meta/:entity", MetaEntityHandler(storage))
		apiGroup.GET("/optionsets/:name", MetaOptionSetHandler(storage))

		apiGroup.GET("/schema", SchemaHandler(storage))
		apiGroup.GET("/schema/revision", RevisionHandler(storage))
		apiGroup.GET("/schema/ddl", DDLHandler(storage))
		apiGroup.GET("/schema/lint", LintHandler(storage))
		apiGroup.POST("/schema/compile", CompileHandler(storage))

		apiGroup.POST("/admin/reload", AdminReloadHandler(storage, cfg.DSLDir, cfg.OptionSetsDir))
		apiGroup.POST("/admin/apply", AdminApplyHandler(storage))
	}
	return r
}

func RunServer(addr string, storage *Storage, cfg RouterConfig) error {
	storage.log.Info("starting HTTP server", zap.String("addr", addr))
	return NewRouter(storage, cfg).Run(addr)
}
