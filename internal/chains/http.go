package chains

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	cfg *Config
}

func Register(rg *gin.RouterGroup, cfg *Config) {
	h := &Handler{cfg: cfg}
	rg.GET("/networks", h.networks)
}

// networks hands the frontend the chain table and wallet connector
// preferences it needs to configure its provider.
func (h *Handler) networks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"appName":          h.cfg.AppName,
		"walletPreference": h.cfg.WalletPreference,
		"defaultNetwork":   h.cfg.DefaultNetwork,
		"networks":         h.cfg.Networks(),
	})
}
