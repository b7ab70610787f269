package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketai-api/internal/interfaces/http/dto"
	apperrors "marketai-api/pkg/errors"
)

// ReadinessProbe 就绪探针
type ReadinessProbe interface {
	Ready() bool
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	version string
	relay   ReadinessProbe
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(version string, relay ReadinessProbe) *HealthHandler {
	return &HealthHandler{
		version: version,
		relay:   relay,
	}
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready 就绪检查接口，未配置上游密钥时返回 503
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} dto.ReadinessResponse
// @Failure 503 {object} dto.ReadinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	check := &dto.ReadinessCheck{Status: "ok"}
	if h.relay == nil || !h.relay.Ready() {
		check.Status = "missing"
		check.Error = "upstream credential not configured"
	}

	resp := dto.ReadinessResponse{
		Status: "ok",
		Checks: map[string]*dto.ReadinessCheck{"upstream_credential": check},
	}
	if check.Status != "ok" {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// NotFound 未知路由或方法
func NotFound(c *gin.Context) {
	dto.AppError(c, apperrors.ErrNotFound)
}
